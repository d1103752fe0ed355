package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/dates"
	"github.com/radieske/betledger/internal/tracker/dto"
	"github.com/radieske/betledger/internal/tracker/stats"
)

// getState retorna o snapshot completo (bilhetes, movimentos e bankroll)
func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Snapshot())
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Stats())
}

func (s *Server) profitEvolution(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.ProfitEvolution(s.tracker.Snapshot()))
}

func (s *Server) profitBySport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.ProfitBySport(s.tracker.Snapshot()))
}

func (s *Server) bankrollEvolution(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.BankrollEvolution(s.tracker.Snapshot(), s.tracker.Now()))
}

// listBets aplica ?status=&bookmaker=&sort=
func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := stats.BetFilter{
		Status:    q.Get("status"),
		Bookmaker: q.Get("bookmaker"),
		Sort:      stats.SortOrder(q.Get("sort")),
	}
	if !validStatusFilter(f.Status, true) {
		writeError(w, http.StatusBadRequest, "unknown status filter")
		return
	}
	if f.Sort != "" && !f.Sort.Valid() {
		writeError(w, http.StatusBadRequest, "unknown sort order")
		return
	}
	writeJSON(w, http.StatusOK, stats.FilterBets(s.tracker.Snapshot().Bets, f))
}

func (s *Server) listBookmakers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Bookmakers(s.tracker.Snapshot().Bets))
}

// history aplica ?status=&from=&to= sobre bilhetes fechados. Sem ?to= o limite é hoje.
func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := stats.HistoryFilter{Status: q.Get("status"), From: q.Get("from"), To: q.Get("to")}
	if f.To == "" {
		f.To = s.tracker.Now().Format("2006-01-02")
	}
	if !validStatusFilter(f.Status, false) {
		writeError(w, http.StatusBadRequest, "unknown status filter")
		return
	}
	for _, d := range []string{f.From, f.To} {
		if _, ok := dates.Parse(d); d != "" && !ok {
			writeError(w, http.StatusBadRequest, "from/to must be YYYY-MM-DD")
			return
		}
	}
	writeJSON(w, http.StatusOK, stats.History(s.tracker.Snapshot().Bets, f))
}

func validStatusFilter(v string, allowPending bool) bool {
	if v == "" || v == stats.All {
		return true
	}
	st := betting.BetStatus(v)
	if st == betting.BetPending {
		return allowPending
	}
	return st.Valid()
}

func (s *Server) createBet(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[dto.CreateBetRequest](w, r)
	if !ok {
		return
	}
	res, err := s.tracker.CreateBet(r.Context(), req.Drafts(), req.Stake, req.Meta())
	if err != nil {
		s.fail(w, err)
		return
	}
	mutation(w, http.StatusCreated, res)
}

// setSelectionStatus liquida (ou corrige) uma seleção e sincroniza o bankroll
func (s *Server) setSelectionStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[dto.SelectionStatusRequest](w, r)
	if !ok {
		return
	}
	res, err := s.tracker.SetSelectionStatus(r.Context(), chi.URLParam(r, "betID"), chi.URLParam(r, "selectionID"), req.Status)
	if err != nil {
		s.fail(w, err)
		return
	}
	mutation(w, http.StatusOK, res)
}

func (s *Server) deleteBet(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.DeleteBet(r.Context(), chi.URLParam(r, "betID"))
	if err != nil {
		s.fail(w, err)
		return
	}
	mutation(w, http.StatusOK, res)
}

func (s *Server) addTransaction(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[dto.TransactionRequest](w, r)
	if !ok {
		return
	}
	res, err := s.tracker.AddTransaction(r.Context(), req.Type, req.Amount, req.Meta())
	if err != nil {
		s.fail(w, err)
		return
	}
	mutation(w, http.StatusCreated, res)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[dto.TransactionRequest](w, r)
	if !ok {
		return
	}
	res, err := s.tracker.UpdateTransaction(r.Context(), req.Transaction(chi.URLParam(r, "id")))
	if err != nil {
		s.fail(w, err)
		return
	}
	mutation(w, http.StatusOK, res)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.DeleteTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	mutation(w, http.StatusOK, res)
}

// setBankroll sobrescreve o saldo sem gerar movimento
func (s *Server) setBankroll(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[dto.BankrollRequest](w, r)
	if !ok {
		return
	}
	res, err := s.tracker.SetBankroll(r.Context(), *req.Amount)
	if err != nil {
		s.fail(w, err)
		return
	}
	mutation(w, http.StatusOK, res)
}
