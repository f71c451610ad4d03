package entity

type StoredFile struct {
	Token   string
	Name    string
	Path    string
	Size    int64
	SavedAt int64
}

type CleanupEvent struct {
	EventID string
	Token   string
	Path    string
}
