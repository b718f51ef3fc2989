package document

import "go-pianoroll/ustx"

// FocusNoteNotification asks views to scroll a note into view
type FocusNoteNotification struct {
	Part *ustx.VoicePart
	Note *ustx.Note
}

func (FocusNoteNotification) Notification() {}

// GotoOtoNotification asks the singers view to select an oto
type GotoOtoNotification struct {
	Singer *ustx.Singer
	Oto    *ustx.Oto
}

func (GotoOtoNotification) Notification() {}

// OtoChangedNotification signals oto values changed; External means on disk
type OtoChangedNotification struct {
	External bool
}

func (OtoChangedNotification) Notification() {}

// ErrorMessageNotification carries an error to whichever view shows dialogs
type ErrorMessageNotification struct {
	Err error
}

func (ErrorMessageNotification) Notification() {}

// SaveRequestNotification asks the main window to save the project
type SaveRequestNotification struct{}

func (SaveRequestNotification) Notification() {}
