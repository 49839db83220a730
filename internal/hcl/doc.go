// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for parsing settings files, decoding them into
// HCL schema structs and translating those into the format-agnostic
// config.Settings model.
package hcl
