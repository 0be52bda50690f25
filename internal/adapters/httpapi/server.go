package httpapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/coopdesk/memberdesk/internal/app/members"
	"github.com/coopdesk/memberdesk/internal/domain"
	"github.com/coopdesk/memberdesk/internal/ports/out/idempotency"
)

const (
	membersRoute = "/members/"

	// IdempotencyKeyHeader optionally marks a create request as retry-safe.
	IdempotencyKeyHeader = "Idempotency-Key"

	maxBodyBytes = 1 << 20
)

// Server implements the member-storage HTTP endpoints on top of the members service.
type Server struct {
	Members *members.Service
	Idem    idempotency.Store
	Log     *zap.Logger
}

func NewServer(membersSvc *members.Service, idem idempotency.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Members: membersSvc,
		Idem:    idem,
		Log:     log,
	}
}

func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	ms, err := s.Members.ListMembers(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, memberFromDomain(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.Members.GetMember(r.Context(), memberIDParam(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberFromDomain(m))
}

func (s *Server) CreateMember(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeMemberRequest(w, r)
	if !ok {
		return
	}
	in := memberInputFromRequest(body)
	ctx := r.Context()

	// Idempotency handling:
	// - Replay if same key+route+bodyHash
	// - Reject if same key+route with different bodyHash (409)
	idemKey := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	var respFP idempotency.Fingerprint
	if s.Idem != nil && idemKey != "" {
		bodyHash, err := hashMemberInput(in)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		metaFP := idempotency.Fingerprint{
			Key:      idempotency.Key(idemKey),
			Method:   http.MethodPost,
			Route:    membersRoute,
			BodyHash: "",
		}
		if meta, ok, err := s.Idem.Get(ctx, metaFP); err != nil {
			s.writeServiceError(w, r, err)
			return
		} else if ok {
			if string(meta.Body) != bodyHash {
				writeError(w, r, http.StatusConflict, "IDEMPOTENCY_KEY_REUSE", "idempotency key reuse with different payload", nil)
				return
			}
		} else {
			_ = s.Idem.Put(ctx, metaFP, idempotency.Record{
				StatusCode:  0,
				ContentType: "text/plain",
				Body:        []byte(bodyHash),
				CreatedAt:   time.Now().UTC(),
			})
		}

		respFP = metaFP
		respFP.BodyHash = bodyHash
		if rec, ok, err := s.Idem.Get(ctx, respFP); err != nil {
			s.writeServiceError(w, r, err)
			return
		} else if ok && rec.StatusCode == http.StatusCreated && strings.HasPrefix(rec.ContentType, "application/json") {
			s.Log.Debug("replaying idempotent create", zap.String("idempotency_key", idemKey))
			w.Header().Set("Content-Type", rec.ContentType)
			w.WriteHeader(rec.StatusCode)
			_, _ = w.Write(rec.Body)
			return
		}
	}

	m, err := s.Members.CreateMember(ctx, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := memberFromDomain(m)

	// Store successful response for replay.
	if respFP.Key != "" {
		if b, err := json.Marshal(resp); err == nil {
			_ = s.Idem.Put(ctx, respFP, idempotency.Record{
				StatusCode:  http.StatusCreated,
				ContentType: "application/json",
				Body:        b,
				CreatedAt:   time.Now().UTC(),
			})
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) UpdateMember(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeMemberRequest(w, r)
	if !ok {
		return
	}
	m, err := s.Members.UpdateMember(r.Context(), memberIDParam(r), memberInputFromRequest(body))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberFromDomain(m))
}

func (s *Server) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.Members.DeleteMember(r.Context(), memberIDParam(r)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ae := (*members.Error)(nil); errors.As(err, &ae) {
		writeError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	s.Log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
}

func memberIDParam(r *http.Request) domain.MemberID {
	return domain.MemberID(chi.URLParam(r, "memberId"))
}

func decodeMemberRequest(w http.ResponseWriter, r *http.Request) (MemberRequest, bool) {
	var body MemberRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "missing request body"
		}
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", msg, map[string]any{"body": err.Error()})
		return MemberRequest{}, false
	}
	return body, true
}

func hashMemberInput(in members.MemberInput) (string, error) {
	// Canonicalize fields that have normalization semantics before hashing.
	canon := in
	canon.FirstName = domain.NormalizeHumanName(canon.FirstName)
	canon.MiddleName = domain.NormalizeHumanName(canon.MiddleName)
	canon.LastName = domain.NormalizeHumanName(canon.LastName)
	canon.Email = strings.TrimSpace(canon.Email)

	raw, err := json.Marshal(canon)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
