// Package publish pushes parsed keymaps to a running visualizer over
// socket.io. A Publisher holds one client connection; every Publish emits the
// configured event with the keymap as a JSON object and waits for the
// server's acknowledgement of that emit.
package publish
