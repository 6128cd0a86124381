package fakes

import "errors"

// ErrUnknownPatient returned by Contacts for a patient missing from the directory
var ErrUnknownPatient = errors.New("fakes: unknown patient")
