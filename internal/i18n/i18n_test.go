package i18n

import (
	"testing"

	"github.com/probashi-portal/apiserver/types"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	require.Equal(t, "You have already applied for this job.", tr.Translate(types.LangEnglish, "alreadyApplied"))
	require.Equal(t, "আপনি ইতিমধ্যে এই চাকরিতে আবেদন করেছেন।", tr.Translate(types.LangBengali, "alreadyApplied"))
}

func TestTranslateUnknownLanguageFallsBackToEnglish(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	require.Equal(t, "Invalid email or password.", tr.Translate("fr", "invalidCredentials"))
}

func TestTranslateUnknownKeyFallsBackToKey(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	require.Equal(t, "noSuchKey", tr.Translate(types.LangEnglish, "noSuchKey"))
}

func TestToggle(t *testing.T) {
	require.Equal(t, types.LangBengali, Toggle(types.LangEnglish))
	require.Equal(t, types.LangEnglish, Toggle(types.LangBengali))
	require.Equal(t, types.LangEnglish, Toggle(""))
}
