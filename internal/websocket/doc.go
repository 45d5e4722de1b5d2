// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package websocket pushes auth state changes to open pages.

The new-product page opens /api/v1/auth/stream while it is displayed. The
handler subscribes to the auth state of the page's session and forwards each
change as a JSON frame:

	{"type":"auth_state","data":{"present":true,"user_id":"...","display_name":"Ana"}}
	{"type":"auth_state","data":{"present":false,"redirect":"/login"}}

The first frame is the state at connect time. When the page closes the
socket the subscription is released, so no callback outlives the page.

Each connection has two goroutines:
  - readPump: reads client frames, answers {"type":"ping"} with a pong
  - writePump: writes queued frames and sends protocol pings every 54s

Client usage:

	const ws = new WebSocket(`wss://${location.host}/api/v1/auth/stream`);
	ws.onmessage = (event) => {
	    const msg = JSON.parse(event.data);
	    if (msg.type === 'auth_state' && msg.data.redirect) {
	        location.assign(msg.data.redirect);
	    }
	};
*/
package websocket
