package contact

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid() Request {
	return Request{Name: "Al", Email: "al@x.com", Message: "1234567890"}
}

func TestValidate_Accepted(t *testing.T) {
	reqs := []Request{
		valid(),
		{Name: "Jane Doe", Email: "jane.doe+tag@example.co.uk", Message: "Hello there, nice site!"},
		{Name: "Zé", Email: "ze@correio.com.br", Message: "Olá, tudo bem?"},
	}
	for _, req := range reqs {
		res := Validate(req)
		require.True(t, res.Accepted(), "%+v: %v", req, res.Errors)
		assert.Equal(t, req, res.Request)
		assert.NoError(t, res.Err())
	}
}

func TestValidate_ShortName(t *testing.T) {
	for _, name := range []string{"", "A", "é"} {
		req := valid()
		req.Name = name
		res := Validate(req)
		require.False(t, res.Accepted())
		assert.Equal(t, FieldErrors{"name": MsgName}, res.Errors, "name %q", name)
	}

	// Other fields failing do not hide the name error.
	res := Validate(Request{Name: "A", Email: "al@x.com", Message: "short"})
	assert.Equal(t, MsgName, res.Errors["name"])
}

func TestValidate_BadEmail(t *testing.T) {
	for _, email := range []string{"", "bad", "al.x.com", "al@x", "@x.com", "al@.com", "al@x.com."} {
		req := valid()
		req.Email = email
		res := Validate(req)
		require.False(t, res.Accepted(), "email %q accepted", email)
		assert.Equal(t, FieldErrors{"email": MsgEmail}, res.Errors, "email %q", email)
	}
}

func TestValidate_ShortMessage(t *testing.T) {
	req := valid()
	req.Message = "123456789"
	res := Validate(req)
	assert.Equal(t, FieldErrors{"message": MsgMessage}, res.Errors)
}

func TestValidate_AllErrorsTogether(t *testing.T) {
	res := Validate(Request{Name: "A", Email: "bad", Message: "short"})

	require.False(t, res.Accepted())
	assert.Equal(t, FieldErrors{
		"name":    MsgName,
		"email":   MsgEmail,
		"message": MsgMessage,
	}, res.Errors)

	var ve *ValidationError
	require.ErrorAs(t, res.Err(), &ve)
	assert.Len(t, ve.Fields, 3)
	assert.True(t, IsValidationError(res.Err()))
}

func TestValidate_Idempotent(t *testing.T) {
	for _, req := range []Request{valid(), {Name: "A", Email: "bad", Message: "short"}} {
		assert.Equal(t, Validate(req), Validate(req))
	}
}

func TestFormat(t *testing.T) {
	got := Format(valid())
	assert.Equal(t, "New contact form submission:\nName: Al\nEmail: al@x.com\nMessage: 1234567890", got)
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***e@example.com", MaskEmail("Jane@Example.com"))
	assert.Equal(t, "a***@x.com", MaskEmail("al@x.com"))
	assert.Equal(t, "***", MaskEmail("bad"))
	assert.Equal(t, "", MaskEmail(" "))

	for _, in := range []string{"éa@x.com", "aé@x.com", "ünïcødé@x.com", "é@x.com"} {
		out := MaskEmail(in)
		assert.True(t, utf8.ValidString(out), "%q → %q", in, out)
	}
	assert.Equal(t, "é***ø@x.com", MaskEmail("élodie.ø@x.com"))
	assert.Equal(t, "é***@x.com", MaskEmail("éa@x.com"))
}
