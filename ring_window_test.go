package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.design/x/hotkey"
)

func TestRingWindowHotkeyHandoff(t *testing.T) {
	rw := &RingWindow{}
	hk := hotkey.New([]hotkey.Modifier{hotkey.ModCmd}, hotkey.KeyQ)

	assert.True(t, rw.storeHotkey(hk))
	assert.True(t, rw.hotkeyActive())
	assert.False(t, rw.storeHotkey(hk), "only one registration is ever held")

	assert.Same(t, hk, rw.dropHotkey(false), "focus loss takes the hotkey for unregistering")
	assert.False(t, rw.hotkeyActive())
	assert.Nil(t, rw.dropHotkey(false), "a second take gets nothing")

	assert.True(t, rw.storeHotkey(hk), "focus gain can register again")
	assert.Same(t, hk, rw.dropHotkey(true))
	assert.False(t, rw.storeHotkey(hk), "no registration after the window closed")
}
