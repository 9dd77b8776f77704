package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/formstore"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

const emailYAML = `
name: signup
children:
  - field:
      name: email
      isRequired: true
      isEmail: true
      message:
        isRequired: Email is required
        isEmail: Email is invalid
`

func TestServer_EventResponseIsCapturedUnderLock(t *testing.T) {
	ctx := context.Background()
	def, err := schema.Load(strings.NewReader(emailYAML))
	require.NoError(t, err)
	reg, err := NewRegistry(def)
	require.NoError(t, err)
	store := formstore.NewMemoryStore(0)
	s := New(reg, store)
	t.Cleanup(func() {
		s.Close()
		_ = store.Close()
	})

	id := uuid.NewString()
	_, err = s.create(ctx, def, id)
	require.NoError(t, err)

	blur := s.event(eventBlur)
	req := func(value string) eventRequest {
		return eventRequest{sessionRequest: sessionRequest{Form: "signup", Session: id}, Field: "email", Value: value}
	}

	first := blur(ctx, req(""))
	second := blur(ctx, req("bad"))

	render := func(resp Response) string {
		rec := httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
		return rec.Body.String()
	}

	assert.Contains(t, render(first), `<p class="error">Email is required</p>`)
	assert.Contains(t, render(second), `<p class="error">Email is invalid</p>`)
}
