// Package bookmark holds the user's saved entries: files, directories,
// web links and collections of other entries, persisted to a JSON
// config file.
package bookmark

import (
	"github.com/google/uuid"
)

// EntryType discriminates the kinds of saved entries.
type EntryType string

const (
	TypeFile       EntryType = "file"
	TypeDirectory  EntryType = "directory"
	TypeWebLink    EntryType = "web_link"
	TypeCollection EntryType = "collection"
)

// Entry is one saved record. IDs are random and unique; collections
// reference their children by ID.
type Entry struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	Nickname    string    `json:"nickname,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Type        EntryType `json:"entry_type"`
	URL         string    `json:"url,omitempty"`
	ChildIDs    []string  `json:"child_entries,omitempty"`
	IsDirectory bool      `json:"is_directory"`
}

// NewEntry creates a file or directory entry.
func NewEntry(path, name, description string, tags []string, isDirectory bool) Entry {
	typ := TypeFile
	if isDirectory {
		typ = TypeDirectory
	}
	return Entry{
		ID:          uuid.NewString(),
		Path:        path,
		Name:        name,
		Description: description,
		Tags:        tags,
		Type:        typ,
		IsDirectory: isDirectory,
	}
}

// NewWebLink creates a web link entry. The URL doubles as the display
// path.
func NewWebLink(name, url, description string, tags []string) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Path:        url,
		Name:        name,
		Description: description,
		Tags:        tags,
		Type:        TypeWebLink,
		URL:         url,
	}
}

// NewCollection creates a collection entry referencing childIDs.
func NewCollection(name, description string, tags []string, childIDs []string) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Path:        "collection://" + name,
		Name:        name,
		Description: description,
		Tags:        tags,
		Type:        TypeCollection,
		ChildIDs:    childIDs,
	}
}

// DisplayName returns the nickname when set, otherwise the name.
func (e Entry) DisplayName() string {
	if e.Nickname != "" {
		return e.Nickname
	}
	return e.Name
}

// AddChild appends an entry ID to a collection, ignoring duplicates.
// Non-collections are left unchanged.
func (e *Entry) AddChild(id string) {
	if e.Type != TypeCollection {
		return
	}
	for _, existing := range e.ChildIDs {
		if existing == id {
			return
		}
	}
	e.ChildIDs = append(e.ChildIDs, id)
}

// RemoveChild drops an entry ID from a collection.
func (e *Entry) RemoveChild(id string) {
	if e.Type != TypeCollection {
		return
	}
	kept := e.ChildIDs[:0]
	for _, existing := range e.ChildIDs {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	e.ChildIDs = kept
}

// HasTag reports whether the entry carries tag.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// migrate fills fields that older config files did not write: missing
// IDs and the entry type derived from the is_directory flag.
func (e Entry) migrate() Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Type == "" {
		if e.IsDirectory {
			e.Type = TypeDirectory
		} else {
			e.Type = TypeFile
		}
	}
	return e
}
