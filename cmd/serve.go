package cmd

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/engraver/constants"
	"github.com/jsphweid/engraver/db"
	"github.com/jsphweid/engraver/editor"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/score"
	"github.com/jsphweid/engraver/scorefile"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the editing API",
	Long:  `Serves editing sessions over HTTP. Sessions live in memory and can be saved to DynamoDB.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.NewStore()
		if err != nil {
			return err
		}
		addr := ":" + constants.GetPort()
		slog.Info("serving", "addr", addr, "table", constants.GetDynamoTable())
		return http.ListenAndServe(addr, NewHandler(store, config.Channels))
	},
}

// ScoreStore persists scores; db.Store is the DynamoDB one.
type ScoreStore interface {
	SaveScore(s *score.Score) (string, error)
	LoadScore(id string) (*score.Score, error)
	GetTitles(ids []string) (map[string]string, error)
}

// session is one score being edited. Requests on a session are serialized.
type session struct {
	mu     sync.Mutex
	editor *editor.Editor
}

type server struct {
	mu       sync.RWMutex
	sessions map[string]*session
	store    ScoreStore
	channels int
}

func newServer(store ScoreStore, channels int) *server {
	return &server{sessions: map[string]*session{}, store: store, channels: channels}
}

// NewHandler serves editing sessions of scores with the given number of
// channels, saving to store.
func NewHandler(store ScoreStore, channels int) http.Handler {
	return newServer(store, channels).router()
}

func (srv *server) router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/scores", srv.handleCreate).Methods("POST")
	router.HandleFunc("/scores/{id}", srv.withSession(srv.handleGet)).Methods("GET")
	router.HandleFunc("/scores/{id}/svg", srv.withSession(srv.handleSVG)).Methods("GET")
	router.HandleFunc("/scores/{id}/commands", srv.withSession(srv.handleCommands)).Methods("POST")
	router.HandleFunc("/scores/{id}/save", srv.withSession(srv.handleSave)).Methods("POST")
	router.HandleFunc("/saved", srv.handleTitles).Methods("GET")
	router.HandleFunc("/saved/{id}/open", srv.handleOpen).Methods("POST")
	return cors.Default().Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("could not write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (srv *server) addSession(s *score.Score) string {
	id := uuid.NewString()
	srv.mu.Lock()
	srv.sessions[id] = &session{editor: editor.New(s)}
	srv.mu.Unlock()
	slog.Info("session created", "id", id, "score", s.ID)
	return id
}

// withSession resolves the {id} route variable and holds the session lock
// for the whole request.
func (srv *server) withSession(h func(http.ResponseWriter, *http.Request, *session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		srv.mu.RLock()
		sess, ok := srv.sessions[id]
		srv.mu.RUnlock()
		if !ok {
			writeError(w, http.StatusNotFound, errors.Errorf("no session %v", id))
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		h(w, r, sess)
	}
}

func (srv *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxScoreBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, errors.Wrap(err, "could not read score"))
		return
	}
	s := score.New(srv.channels)
	if len(body) > 0 {
		if s, err = scorefile.Unmarshal(body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, model.ScoreCreated{ID: srv.addSession(s)})
}

func (srv *server) handleGet(w http.ResponseWriter, r *http.Request, sess *session) {
	data, err := scorefile.Marshal(sess.editor.Score)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

func (srv *server) handleSVG(w http.ResponseWriter, r *http.Request, sess *session) {
	svg, _, err := engraveScore(sess.editor.Score, sess.editor.Cursor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

func (srv *server) handleCommands(w http.ResponseWriter, r *http.Request, sess *session) {
	var input model.CommandRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "could not decode commands"))
		return
	}
	for _, command := range input.Commands {
		if command == "set-duration" {
			command = "dur=" + input.Duration
		}
		if err := sess.editor.Run(command); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	svg, layout, err := engraveScore(sess.editor.Score, sess.editor.Cursor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, model.Engraving{
		ID:     mux.Vars(r)["id"],
		Cursor: sess.editor.Cursor.String(),
		Width:  layout.Width,
		Height: layout.Height,
		SVG:    string(svg),
	})
}

func (srv *server) handleSave(w http.ResponseWriter, r *http.Request, sess *session) {
	id, err := srv.store.SaveScore(sess.editor.Score)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ScoreCreated{ID: id})
}

func (srv *server) handleTitles(w http.ResponseWriter, r *http.Request) {
	ids := r.URL.Query()["id"]
	if len(ids) > db.MaxBatch {
		writeError(w, http.StatusBadRequest, errors.Errorf("at most %v ids", db.MaxBatch))
		return
	}
	titles, err := srv.store.GetTitles(ids)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, titles)
}

func (srv *server) handleOpen(w http.ResponseWriter, r *http.Request) {
	s, err := srv.store.LoadScore(mux.Vars(r)["id"])
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	} else if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.ScoreCreated{ID: srv.addSession(s)})
}
