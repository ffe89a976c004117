package models

type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// UploadStatus is the single status slot shown next to the upload control.
type UploadStatus struct {
	Text string
	Kind StatusKind
}

// Snapshot is the full core state pushed to the UI after every change.
type Snapshot struct {
	Entries       []Entry
	Upload        UploadStatus
	SelectedFile  string // name of the pending upload, empty when none
	CanUpload     bool
	Uploading     bool
	DropActive    bool
	InFlight      int // outstanding questions
	ServiceStatus string
	Notice        string
}
