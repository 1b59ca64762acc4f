package app

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cristianoliveira/booknet/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsClient struct {
	current *settings.Settings
	resets  int
	err     error
}

func (f *fakeSettingsClient) ResetSettings() (*settings.Settings, error) {
	f.resets++
	return settings.DefaultSettings(), f.err
}

func (f *fakeSettingsClient) LoadSettings() (*settings.Settings, error) {
	return f.current, f.err
}

func TestSettingsShowWritesTOML(t *testing.T) {
	client := &fakeSettingsClient{current: &settings.Settings{ActiveView: "borrowed", Format: "table"}}

	var buf bytes.Buffer
	require.NoError(t, NewSettingsUseCase(client).Show(&buf))
	assert.Regexp(t, `active_view = ['"]borrowed['"]`, buf.String())
	assert.Regexp(t, `format = ['"]table['"]`, buf.String())
}

func TestSettingsReset(t *testing.T) {
	out, _ := captureConsole(t)
	client := &fakeSettingsClient{}
	u := NewSettingsUseCase(client)

	require.NoError(t, u.Reset(ResetSettingsInput{ConfirmFn: func() bool { return false }}))
	assert.Equal(t, 0, client.resets)

	require.NoError(t, u.Reset(ResetSettingsInput{GetEnv: func(k string) string {
		if k == "CI" {
			return "1"
		}
		return ""
	}}))
	assert.Equal(t, 1, client.resets)
	assert.Contains(t, out.String(), "Settings reset to defaults")

	client.err = errors.New("read-only")
	assert.Error(t, u.Reset(ResetSettingsInput{Force: true}))
}
