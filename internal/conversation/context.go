package conversation

// Context is the conversation state threaded through Respond. It is a value:
// Respond returns an updated copy and never touches the one passed in.
type Context struct {
	ClickedSuggestions []string
	SearchQueries      []string
	ShownProducts      []string
	Depth              int
	LastCategory       Category
	Preferences        []string
	InteractionCount   int
	DiscoveryPhase     bool
	FirstButtonClicked bool
}

func NewContext() Context {
	return Context{DiscoveryPhase: true}
}

// Clone deep-copies the slices.
func (c Context) Clone() Context {
	c.ClickedSuggestions = cloneStrings(c.ClickedSuggestions)
	c.SearchQueries = cloneStrings(c.SearchQueries)
	c.ShownProducts = cloneStrings(c.ShownProducts)
	c.Preferences = cloneStrings(c.Preferences)
	return c
}

// ShowsSuggestions reports whether discovery buttons are still offered.
func (c Context) ShowsSuggestions() bool {
	return c.DiscoveryPhase && !c.FirstButtonClicked
}

func (c Context) hasClicked(id string) bool {
	return containsString(c.ClickedSuggestions, id)
}

func (c Context) hasAsked(q string) bool {
	return containsString(c.SearchQueries, q)
}

func (c *Context) markShown(ids []string) {
	for _, id := range ids {
		if !containsString(c.ShownProducts, id) {
			c.ShownProducts = append(c.ShownProducts, id)
		}
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
