package service

// Chat front ends ask for some values as free text (a phone number, a gift
// message, an email). The session remembers which value the next text
// message answers, plus the answers collected so far for multi-step forms.

// Await marks the next free-text message as the value for field.
func (s *Session) Await(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaiting = field
}

// TakeAwaiting returns the field the next message answers and clears it.
func (s *Session) TakeAwaiting() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	field := s.awaiting
	s.awaiting = ""
	return field, field != ""
}

func (s *Session) SetDraft(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drafts == nil {
		s.drafts = make(map[string]string)
	}
	s.drafts[key] = value
}

func (s *Session) Draft(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[key]
}

// ClearDrafts drops the collected answers and any awaited field.
func (s *Session) ClearDrafts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = nil
	s.awaiting = ""
}
