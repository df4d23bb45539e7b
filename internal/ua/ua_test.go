package ua

import (
	"testing"

	surfer "github.com/avct/uasurfer"
	"github.com/stretchr/testify/assert"
)

func TestVersionToString(t *testing.T) {
	cases := map[surfer.Version]string{
		{}:                              "",
		{Major: 17}:                     "17",
		{Major: 17, Minor: 3}:           "17.3",
		{Major: 17, Minor: 3, Patch: 1}: "17.3.1",
		{Major: 17, Patch: 2}:           "17.0.2",
	}
	for in, want := range cases {
		assert.Equal(t, want, versionToString(in), "%+v", in)
	}
}

func TestParse(t *testing.T) {
	chrome := Parse("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/125.0.6422.112 Safari/537.36")
	assert.Equal(t, "Chrome", chrome.Browser)
	assert.Equal(t, "Desktop", chrome.Device)
	assert.False(t, chrome.IsBot)

	bot := Parse("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	assert.True(t, bot.IsBot)
}

func TestInfoString(t *testing.T) {
	i := Info{Browser: "Chrome", Version: "125.0.6422", OS: "MacOSX", Device: "Desktop"}
	assert.Equal(t, "Chrome 125/MacOSX Desktop", i.String())
}
