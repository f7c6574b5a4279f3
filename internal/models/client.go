package models

// ClientState describes one client's config file as found on disk during a
// run. Servers is nil when the file is missing or could not be parsed;
// Exists distinguishes the two cases: a present-but-unparseable file has
// Exists true and Servers nil, and must stay out of both the merge input
// and the write phase.
type ClientState struct {
	Name    string
	Path    string
	Exists  bool
	Servers ServerMap
}

// Usable reports whether the state can contribute to a merge.
func (c *ClientState) Usable() bool {
	return c.Servers != nil
}
