package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAwaiting(t *testing.T) {
	sess, _ := newTestStore(t).FindOrCreate(1)

	_, ok := sess.TakeAwaiting()
	assert.False(t, ok)

	sess.Await("delivery:phone")
	field, ok := sess.TakeAwaiting()
	assert.True(t, ok)
	assert.Equal(t, "delivery:phone", field)

	_, ok = sess.TakeAwaiting()
	assert.False(t, ok, "a field is answered once")
}

func TestDrafts(t *testing.T) {
	sess, _ := newTestStore(t).FindOrCreate(1)

	assert.Empty(t, sess.Draft("email"))
	sess.SetDraft("email", "a@b.c")
	assert.Equal(t, "a@b.c", sess.Draft("email"))

	sess.Await("signin:password")
	sess.ClearDrafts()
	assert.Empty(t, sess.Draft("email"))
	_, ok := sess.TakeAwaiting()
	assert.False(t, ok)
}
