package iterm2

// JXA scripts executed through osascript. Each returns a single JSON or
// boolean line on stdout. The JSON field names these scripts emit are only
// one of the spellings the probe tables accept; older iTerm2 builds and the
// Python automation API use different ones.

const runningScript = `(() => {
	return Application("iTerm2").running() ? "true" : "false";
})()`

const snapshotScript = `(() => {
	const it = Application("iTerm2");
	const out = { windows: [], active_session_id: "" };
	const windows = it.windows();
	for (let wi = 0; wi < windows.length; wi++) {
		const w = windows[wi];
		const tabs = [];
		const wTabs = w.tabs();
		for (let ti = 0; ti < wTabs.length; ti++) {
			const tab = wTabs[ti];
			const sessions = [];
			const tSessions = tab.sessions();
			for (let si = 0; si < tSessions.length; si++) {
				const s = tSessions[si];
				const entry = { id: String(s.id()), name: "" };
				try { entry.name = String(s.name()); } catch (e) {}
				try { entry.path = String(s.variable({ named: "path" })); } catch (e) {}
				try { entry.commandLine = String(s.variable({ named: "commandLine" })); } catch (e) {}
				sessions.push(entry);
			}
			tabs.push({ id: String(tab.id()), tab_index: ti + 1, sessions: sessions });
		}
		out.windows.push({ id: String(w.id()), window_index: wi + 1, tabs: tabs });
	}
	try {
		out.active_session_id = String(it.currentWindow().currentTab().currentSession().id());
	} catch (e) {}
	return JSON.stringify(out);
})()`

// activateScriptTemplate takes one %q-quoted session id and selects the
// matching session, tab, and window. Prints "true" when found.
const activateScriptTemplate = `(() => {
	const it = Application("iTerm2");
	const windows = it.windows();
	for (let wi = 0; wi < windows.length; wi++) {
		const tabs = windows[wi].tabs();
		for (let ti = 0; ti < tabs.length; ti++) {
			const sessions = tabs[ti].sessions();
			for (let si = 0; si < sessions.length; si++) {
				if (String(sessions[si].id()) === %s) {
					sessions[si].select();
					tabs[ti].select();
					windows[wi].select();
					it.activate();
					return "true";
				}
			}
		}
	}
	return "false";
})()`

// selectPaneScriptTemplate takes one %q-quoted menu item title under
// Window → Select Split Pane. A disabled item means no pane exists in that
// direction; that is reported as "false", not an error.
const selectPaneScriptTemplate = `(() => {
	const se = Application("System Events");
	const proc = se.processes.byName("iTerm2");
	const item = proc.menuBars[0].menuBarItems.byName("Window")
		.menus[0].menuItems.byName("Select Split Pane")
		.menus[0].menuItems.byName(%s);
	if (!item.enabled()) {
		return "false";
	}
	item.click();
	return "true";
})()`
