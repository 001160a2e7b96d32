// Package protocol defines the JSON frames exchanged between the browser and
// a menu session over a WebSocket connection.
//
// Every frame is a JSON object carrying a "kind" discriminator:
//
//	client → server   {"kind":"event","seq":3,"node":12,"type":"click","detail":{...}}
//	server → client   {"kind":"sync","seq":3,"nodes":[...],"removed":[...]}
//	server → client   {"kind":"error","seq":3,"code":"disabled","message":"..."}
//
// The seq of a sync or error frame echoes the event it answers. The initial
// sync sent on connect has seq 0 and contains every attached node.
package protocol
