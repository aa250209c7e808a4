package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/blockserve/pkg/autoformat"
	"github.com/bastiangx/blockserve/pkg/blocks"
	"github.com/bastiangx/blockserve/pkg/config"
	"github.com/bastiangx/blockserve/pkg/editor"
	"github.com/bastiangx/blockserve/pkg/index"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// errBadRequest marks failures caused by the request itself.
var errBadRequest = errors.New("bad request")

// Server answers msgpack requests for one editor.
type Server struct {
	editor *editor.Editor
	cfg    config.ServerConfig
	dec    *msgpack.Decoder
	out    *bufio.Writer
	enc    *msgpack.Encoder
	log    *log.Logger

	requests int
}

// NewServer creates a server reading requests from r and writing
// responses to w.
func NewServer(ed *editor.Editor, cfg config.ServerConfig, r io.Reader, w io.Writer, logger *log.Logger) *Server {
	out := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(out)
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		editor: ed,
		cfg:    cfg,
		dec:    msgpack.NewDecoder(bufio.NewReader(r)),
		out:    out,
		enc:    enc,
		log:    logger,
	}
}

// Requests returns how many requests have been handled.
func (s *Server) Requests() int {
	return s.requests
}

// Start serves requests until the input ends. A request that decodes but
// is invalid gets an error response; only a broken stream stops the loop.
func (s *Server) Start() error {
	s.log.Debug("Starting server")
	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Debugf("Unmarshaling request: %v", err)
			if err := s.send(ErrorResponse{Error: "invalid msgpack request", Code: 400}); err != nil {
				return err
			}
			continue
		}
		if err := s.send(s.Handle(req)); err != nil {
			return err
		}
	}
}

func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return err
	}
	return s.out.Flush()
}

// Handle processes one request and returns the response to encode.
func (s *Server) Handle(req Request) any {
	s.requests++
	resp, err := s.dispatch(req)
	if err != nil {
		code := 500
		if isClientError(err) {
			code = 400
			s.log.Debugf("Request %s (%s) rejected: %v", req.ID, req.Action, err)
		} else {
			s.log.Errorf("Request %s (%s) failed: %v", req.ID, req.Action, err)
		}
		return ErrorResponse{ID: req.ID, Error: err.Error(), Code: code}
	}
	return resp
}

func isClientError(err error) bool {
	return errors.Is(err, errBadRequest) ||
		errors.Is(err, index.ErrInvalidInput) ||
		errors.Is(err, editor.ErrNoSession) ||
		errors.Is(err, editor.ErrSessionActive) ||
		errors.Is(err, editor.ErrBlockRange)
}

func (s *Server) dispatch(req Request) (any, error) {
	ed := s.editor
	switch req.Action {
	case "", "complete":
		return s.handleComplete(req)
	case "index":
		if err := ed.IndexAllPages(req.Pages); err != nil {
			return nil, err
		}
		return s.status(req.ID), nil
	case "append":
		if err := ed.IndexContent(req.Text); err != nil {
			return nil, err
		}
		return s.status(req.ID), nil
	case "clear":
		ed.ClearIndex()
		return s.status(req.ID), nil
	case "stats":
		return s.status(req.ID), nil
	case "health":
		return StatusResponse{ID: req.ID, Status: "ok"}, nil

	case "split":
		return documentResponse(req.ID, blocks.Split(req.Text)), nil
	case "join":
		return documentResponse(req.ID, req.Blocks), nil
	case "load":
		if err := ed.SetDocument(req.Text); err != nil {
			return nil, err
		}
		return s.document(req.ID), nil
	case "document":
		return s.document(req.ID), nil

	case "begin":
		var (
			sess editor.Session
			err  error
		)
		switch {
		case req.Block == nil:
			sess, err = ed.BeginEdit(editor.TrailingSlot, req.Text)
		case req.Text == "":
			sess, err = ed.Focus(*req.Block)
		default:
			sess, err = ed.BeginEdit(*req.Block, req.Text)
		}
		if err != nil {
			return nil, err
		}
		return sessionResponse(req.ID, sess), nil
	case "select":
		if len(req.Selection) != 2 {
			return nil, fmt.Errorf("%w: sel must be [start, end]", errBadRequest)
		}
		sess, err := ed.SetSelection(req.Selection[0], req.Selection[1])
		if err != nil {
			return nil, err
		}
		return sessionResponse(req.ID, sess), nil
	case "key":
		return s.handleKey(req)
	case "suggest":
		p, sugg, err := ed.Suggest(s.cfg.ClampLimit(req.Limit))
		if err != nil {
			return nil, err
		}
		resp := completionResponse(req.ID, sugg, 0)
		resp.Start = p.Start
		return resp, nil
	case "accept":
		sess, err := ed.AcceptSuggestion(req.Text)
		if err != nil {
			return nil, err
		}
		return sessionResponse(req.ID, sess), nil
	case "table":
		sess, err := ed.InsertTable(req.Rows, req.Cols)
		if err != nil {
			return nil, err
		}
		return sessionResponse(req.ID, sess), nil
	case "commit":
		if _, err := ed.CommitEdit(); err != nil {
			return nil, err
		}
		return s.document(req.ID), nil
	case "cancel":
		if err := ed.Cancel(); err != nil {
			return nil, err
		}
		return s.document(req.ID), nil
	case "toggle":
		if req.Block == nil {
			return nil, fmt.Errorf("%w: toggle needs a block", errBadRequest)
		}
		if _, err := ed.ToggleTask(*req.Block, req.N); err != nil {
			return nil, err
		}
		return s.document(req.ID), nil
	case "remove":
		if req.Block == nil {
			return nil, fmt.Errorf("%w: remove needs a block", errBadRequest)
		}
		if err := ed.RemoveBlock(*req.Block); err != nil {
			return nil, err
		}
		return s.document(req.ID), nil
	default:
		return nil, fmt.Errorf("%w: unknown action %q", errBadRequest, req.Action)
	}
}

func (s *Server) handleComplete(req Request) (any, error) {
	if req.Prefix == "" {
		return nil, fmt.Errorf("%w: missing 'p' parameter", errBadRequest)
	}
	if s.cfg.MaxPrefix > 0 && utf8.RuneCountInString(req.Prefix) > s.cfg.MaxPrefix {
		return nil, fmt.Errorf("%w: prefix exceeds maximum length of %d characters", errBadRequest, s.cfg.MaxPrefix)
	}
	start := time.Now()
	sugg := s.editor.FindCompletions(req.Prefix, s.cfg.ClampLimit(req.Limit))
	return completionResponse(req.ID, sugg, time.Since(start).Microseconds()), nil
}

func (s *Server) handleKey(req Request) (any, error) {
	key, err := autoformat.ParseKey(req.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	mods, err := autoformat.ParseModifiers(req.Mods)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	res, err := s.editor.ApplyKeystroke(key, mods)
	if err != nil {
		return nil, err
	}
	resp := sessionResponse(req.ID, res.Session)
	resp.Suggest = res.SuggestionsRequestNeeded
	resp.Done = res.Done
	resp.Rule = res.Rule
	if res.SuggestionsRequestNeeded {
		_, sugg, _ := s.editor.Suggest(s.cfg.ClampLimit(req.Limit))
		resp.Suggestions = toWire(sugg)
	}
	return resp, nil
}

func (s *Server) status(id string) StatusResponse {
	return StatusResponse{ID: id, Status: "ok", Stats: s.editor.Index().Stats()}
}

func (s *Server) document(id string) DocumentResponse {
	return documentResponse(id, s.editor.Document().Texts())
}

func documentResponse(id string, texts []string) DocumentResponse {
	resp := DocumentResponse{
		ID:     id,
		Blocks: texts,
		Text:   blocks.Join(texts),
		Atomic: make([]bool, len(texts)),
		Table:  make([]bool, len(texts)),
	}
	for i, text := range texts {
		resp.Atomic[i] = blocks.IsAtomic(text)
		resp.Table[i] = blocks.IsTable(text)
	}
	return resp
}

func sessionResponse(id string, sess editor.Session) SessionResponse {
	start, end := sess.Buffer.Selection()
	return SessionResponse{
		ID:    id,
		Block: sess.BlockIndex,
		Text:  sess.Buffer.Text(),
		Start: start,
		End:   end,
	}
}

func completionResponse(id string, sugg []index.Suggestion, took int64) CompletionResponse {
	wire := toWire(sugg)
	return CompletionResponse{ID: id, Suggestions: wire, Count: len(wire), TimeTaken: took}
}

func toWire(sugg []index.Suggestion) []CompletionSuggestion {
	out := make([]CompletionSuggestion, len(sugg))
	for i, sg := range sugg {
		out[i] = CompletionSuggestion{Text: sg.Text, Kind: sg.Kind.String(), Count: sg.Count}
	}
	return out
}
