package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lutefd/pokedex-api/internal/arena"
	"github.com/lutefd/pokedex-api/internal/browse"
	"github.com/lutefd/pokedex-api/internal/catalog"
	"github.com/lutefd/pokedex-api/internal/detail"
	"github.com/lutefd/pokedex-api/internal/domain/battle"
	"github.com/lutefd/pokedex-api/internal/storage"
	"github.com/lutefd/pokedex-api/internal/team"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, team.ErrRemoveFailed) && errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, team.ErrCapacityExceeded), errors.Is(err, detail.ErrAlreadyAdded):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, arena.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrFetchFailure):
		return http.StatusBadGateway
	case errors.Is(err, browse.ErrUnknownType), errors.Is(err, browse.ErrPageOutOfRange), errors.Is(err, detail.ErrEmptyQuery), errors.Is(err, battle.ErrSelfBattle):
		return http.StatusBadRequest
	case errors.Is(err, battle.ErrMissingStat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
