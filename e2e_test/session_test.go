//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/engraver/cmd"
	"github.com/jsphweid/engraver/db"
	"github.com/jsphweid/engraver/midi"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/score"
	"github.com/jsphweid/engraver/scorefile"
	"github.com/stretchr/testify/assert"
)

type memoryStore map[string]*score.Score

func (m memoryStore) SaveScore(s *score.Score) (string, error) {
	s.ID = "stored"
	m[s.ID] = s
	return s.ID, nil
}

func (m memoryStore) LoadScore(id string) (*score.Score, error) {
	if s, ok := m[id]; ok {
		return s, nil
	}
	return nil, db.ErrNotFound
}

func (m memoryStore) GetTitles(ids []string) (map[string]string, error) {
	return map[string]string{}, nil
}

const chorale = `
title: Chorale
movement:
  - sig: [{key: 0, time: 4/4, tempo: 60}]
    bar:
      - chan:
          - notes: 1/2C4E4G4 1/2F4A4C5
`

func request(t *testing.T, h http.Handler, method, path string, body io.Reader) []byte {
	req := httptest.NewRequest(method, path, body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		t.Fatalf("%v %v: %v %s", method, path, resp.StatusCode, respBody)
	}
	return respBody
}

func TestEditedSessionExportsChords(t *testing.T) {
	assert := assert.New(t)
	h := cmd.NewHandler(memoryStore{}, 1)

	var created model.ScoreCreated
	assert.NoError(json.Unmarshal(request(t, h, "POST", "/scores", strings.NewReader(chorale)), &created))

	commands, _ := json.Marshal(model.CommandRequestBody{Commands: []string{"up-step", "right", "down-step"}})
	request(t, h, "POST", "/scores/"+created.ID+"/commands", bytes.NewReader(commands))

	s, err := scorefile.Unmarshal(request(t, h, "GET", "/scores/"+created.ID, nil))
	assert.NoError(err)
	assert.Equal("1/2D4E4G4 1/2E4A4C5", model.FormatChannel(s.Movement[0].Bar[0].Chan[0].Notes))

	mf, err := midi.Export(s)
	assert.NoError(err)
	assert.Equal([]midi.Chord{
		{Ticks: 0, Keys: []uint8{62, 64, 67}},
		{Ticks: 2 * midi.TicksPerQuarter, Keys: []uint8{64, 69, 72}},
	}, midi.Chords(mf))
}
