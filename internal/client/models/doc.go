// Package models defines the request and response payloads of the admin API
// feature modules.
package models
