package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/dto"
	"github.com/radieske/betledger/internal/tracker/ledger"
	"github.com/radieske/betledger/internal/tracker/service"
	"github.com/radieske/betledger/internal/tracker/state"
	"github.com/radieske/betledger/internal/tracker/stats"
)

// Tracker define as operações do tracker usadas pelos handlers HTTP
type Tracker interface {
	Snapshot() state.State
	Stats() stats.Stats
	Now() time.Time
	CreateBet(ctx context.Context, drafts []betting.SelectionDraft, stake decimal.Decimal, meta betting.BetMeta) (service.Result, error)
	SetSelectionStatus(ctx context.Context, betID, selectionID string, status betting.SelectionStatus) (service.Result, error)
	DeleteBet(ctx context.Context, betID string) (service.Result, error)
	AddTransaction(ctx context.Context, typ ledger.TransactionType, amount decimal.Decimal, meta ledger.TransactionMeta) (service.Result, error)
	UpdateTransaction(ctx context.Context, updated ledger.Transaction) (service.Result, error)
	DeleteTransaction(ctx context.Context, id string) (service.Result, error)
	SetBankroll(ctx context.Context, amount decimal.Decimal) (service.Result, error)
}

// Server expõe a API REST do tracker
type Server struct {
	log     *zap.Logger
	tracker Tracker
}

func NewServer(log *zap.Logger, t Tracker) *Server { return &Server{log: log, tracker: t} }

// Router retorna o roteador HTTP com os endpoints REST
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	// leitura
	r.Get("/v1/state", s.getState)
	r.Get("/v1/stats", s.getStats)
	r.Get("/v1/stats/profit-evolution", s.profitEvolution)
	r.Get("/v1/stats/profit-by-sport", s.profitBySport)
	r.Get("/v1/stats/bankroll-evolution", s.bankrollEvolution)
	r.Get("/v1/bets", s.listBets)
	r.Get("/v1/bets/bookmakers", s.listBookmakers)
	r.Get("/v1/history", s.history)

	// escrita
	r.Post("/v1/bets", s.createBet)
	r.Put("/v1/bets/{betID}/selections/{selectionID}/status", s.setSelectionStatus)
	r.Delete("/v1/bets/{betID}", s.deleteBet)
	r.Post("/v1/transactions", s.addTransaction)
	r.Put("/v1/transactions/{id}", s.updateTransaction)
	r.Delete("/v1/transactions/{id}", s.deleteTransaction)
	r.Put("/v1/bankroll", s.setBankroll)
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

// fail traduz erros do serviço: entrada inválida vira 400, o resto 500
func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, dto.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

// decode lê o corpo JSON e roda a validação do request
func decode[T interface{ Validate() error }](w http.ResponseWriter, r *http.Request) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return req, false
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	return req, true
}

// mutation monta a resposta padrão de escrita a partir do estado que foi gravado
func mutation(w http.ResponseWriter, status int, res service.Result) {
	writeJSON(w, status, dto.MutationResponse{
		Action:      string(res.Action),
		EntityID:    res.EntityID,
		Noop:        !res.Applied,
		Delta:       res.Delta,
		Bankroll:    res.Bankroll,
		Bet:         res.Bet,
		Transaction: res.Transaction,
	})
}
