package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserAgent(t *testing.T) {
	ua, err := UserAgent(DefaultUserAgentAlias)
	require.NoError(t, err)
	assert.Contains(t, ua, "Googlebot")

	_, err = UserAgent("netscape_navigator")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "netscape_navigator")
}

func TestUserAgentAliases(t *testing.T) {
	aliases := UserAgentAliases()
	assert.Equal(t, []string{
		"chrome_desktop", "chrome_mobile", "googlebot_desktop", "googlebot_mobile",
	}, aliases)
}
