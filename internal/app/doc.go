// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle: loading settings,
// validating and parsing keymap files, writing results, and the optional
// publish, watch and HTTP service modes. It is decoupled from any specific
// entrypoint like a CLI.
package app
