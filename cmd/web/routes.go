package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/config"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/db"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/events"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/httputil"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/middleware"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/relay"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/service"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/markbates/goth/gothic"
	"github.com/rs/cors"
)

type createTournamentRequest struct {
	Name              string    `json:"name"`
	Format            string    `json:"format"`
	StartDate         time.Time `json:"start_date"`
	MatchDurationMins int       `json:"match_duration_mins"`
	Teams             []string  `json:"teams"`
	Fields            []string  `json:"fields"`
}

type createScheduleRequest struct {
	SwissRounds   int  `json:"swiss_rounds,omitempty"`
	SkipBalancing bool `json:"skip_balancing,omitempty"`
}

type updateScoreRequest struct {
	ScoreA int `json:"score_a"`
	ScoreB int `json:"score_b"`
}

type submitSpiritRequest struct {
	ScoredTeamID uuid.UUID `json:"scored_team_id"`
	league.SpiritSubScores
	Comments string `json:"comments,omitempty"`
}

func newRouter(cfg *config.Config, sessionManager *scs.SessionManager, hub *relay.Hub, broadcaster events.Broadcaster) http.Handler {
	dbConn := db.GetDB()

	tournamentStore := store.NewTournamentStore(dbConn)
	teamStore := store.NewTeamStore(dbConn)
	matchStore := store.NewMatchStore(dbConn)
	spiritStore := store.NewSpiritStore(dbConn)
	userStore := store.NewUserStore(dbConn)

	clock := clockwork.NewRealClock()
	tournamentService := service.NewTournamentService(dbConn, tournamentStore, teamStore, matchStore)
	matchService := service.NewMatchService(dbConn, matchStore, teamStore, broadcaster, clock)
	spiritService := service.NewSpiritService(dbConn, matchStore, teamStore, spiritStore, broadcaster)
	standingsService := service.NewStandingsService(teamStore)
	userService := service.NewUserService(dbConn, userStore)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler)
	if cfg.RateLimitEnabled {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}
	r.Use(sessionManager.LoadAndSave)

	r.Get("/ws", hub.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid tournament ID", err)
				return
			}

			data, err := tournamentService.GetTournamentData(r.Context(), id)
			if err != nil {
				writeLeagueError(w, err, "Failed to get tournament")
				return
			}
			httputil.WriteJSON(w, http.StatusOK, data)
		})

		r.Get("/tournaments/{id}/standings", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid tournament ID", err)
				return
			}

			if _, err := tournamentService.GetTournamentData(r.Context(), id); err != nil {
				writeLeagueError(w, err, "Failed to get tournament")
				return
			}
			teams, err := standingsService.Leaderboard(r.Context(), id)
			if err != nil {
				writeLeagueError(w, err, "Failed to compute standings")
				return
			}
			httputil.WriteJSON(w, http.StatusOK, map[string]any{"standings": teams})
		})

		r.Get("/teams/{id}/eligibility", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid team ID", err)
				return
			}

			report, err := spiritService.CanPlay(r.Context(), id)
			if err != nil {
				writeLeagueError(w, err, "Failed to check eligibility")
				return
			}
			httputil.WriteJSON(w, http.StatusOK, report)
		})

		r.Get("/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid match ID", err)
				return
			}

			match, err := matchService.GetMatch(r.Context(), id)
			if err != nil {
				writeLeagueError(w, err, "Failed to get match")
				return
			}
			httputil.WriteJSON(w, http.StatusOK, match)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sessionManager, userStore))

			r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
				ownerID, _ := middleware.GetUserIDFromContext(r.Context())
				tournaments, err := tournamentService.GetTournamentsForOwner(r.Context(), ownerID)
				if err != nil {
					httputil.InternalServerError(w, "Failed to list tournaments", err)
					return
				}
				httputil.WriteJSON(w, http.StatusOK, map[string]any{"tournaments": tournaments})
			})

			r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
				var req createTournamentRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}

				ownerID, _ := middleware.GetUserIDFromContext(r.Context())
				id, err := tournamentService.CreateTournament(r.Context(), ownerID, service.CreateTournamentInput{
					Name:              req.Name,
					Format:            league.ScheduleFormat(req.Format),
					StartDate:         req.StartDate,
					MatchDurationMins: req.MatchDurationMins,
					TeamNames:         req.Teams,
					FieldNames:        req.Fields,
				})
				if err != nil {
					writeLeagueError(w, err, "Failed to create tournament")
					return
				}
				httputil.WriteJSON(w, http.StatusCreated, map[string]any{"id": id})
			})

			r.Post("/tournaments/{id}/schedule", func(w http.ResponseWriter, r *http.Request) {
				id, err := uuid.Parse(chi.URLParam(r, "id"))
				if err != nil {
					httputil.BadRequest(w, "Invalid tournament ID", err)
					return
				}

				var req createScheduleRequest
				if r.ContentLength > 0 {
					if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
						httputil.BadRequest(w, "Invalid request body", err)
						return
					}
				}

				matches, err := tournamentService.CreateSchedule(r.Context(), id, service.ScheduleOptions{
					SwissRounds:   req.SwissRounds,
					SkipBalancing: req.SkipBalancing,
				})
				if err != nil {
					writeLeagueError(w, err, "Failed to create schedule")
					return
				}
				httputil.WriteJSON(w, http.StatusCreated, map[string]any{"matches": matches})
			})

			r.Post("/matches/{id}/score", func(w http.ResponseWriter, r *http.Request) {
				id, err := uuid.Parse(chi.URLParam(r, "id"))
				if err != nil {
					httputil.BadRequest(w, "Invalid match ID", err)
					return
				}

				var req updateScoreRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}

				actorID, _ := middleware.GetUserIDFromContext(r.Context())
				match, err := matchService.UpdateScore(r.Context(), id, req.ScoreA, req.ScoreB, actorID)
				if err != nil {
					writeLeagueError(w, err, "Failed to update score")
					return
				}
				httputil.WriteJSON(w, http.StatusOK, match)
			})

			r.Post("/matches/{id}/complete", func(w http.ResponseWriter, r *http.Request) {
				id, err := uuid.Parse(chi.URLParam(r, "id"))
				if err != nil {
					httputil.BadRequest(w, "Invalid match ID", err)
					return
				}

				match, err := matchService.CompleteMatch(r.Context(), id)
				if err != nil {
					writeLeagueError(w, err, "Failed to complete match")
					return
				}
				httputil.WriteJSON(w, http.StatusOK, match)
			})

			r.Post("/matches/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
				id, err := uuid.Parse(chi.URLParam(r, "id"))
				if err != nil {
					httputil.BadRequest(w, "Invalid match ID", err)
					return
				}

				match, err := matchService.CancelMatch(r.Context(), id)
				if err != nil {
					writeLeagueError(w, err, "Failed to cancel match")
					return
				}
				httputil.WriteJSON(w, http.StatusOK, match)
			})

			r.Post("/matches/{id}/postpone", func(w http.ResponseWriter, r *http.Request) {
				id, err := uuid.Parse(chi.URLParam(r, "id"))
				if err != nil {
					httputil.BadRequest(w, "Invalid match ID", err)
					return
				}

				match, err := matchService.PostponeMatch(r.Context(), id)
				if err != nil {
					writeLeagueError(w, err, "Failed to postpone match")
					return
				}
				httputil.WriteJSON(w, http.StatusOK, match)
			})

			r.Post("/matches/{id}/spirit", func(w http.ResponseWriter, r *http.Request) {
				id, err := uuid.Parse(chi.URLParam(r, "id"))
				if err != nil {
					httputil.BadRequest(w, "Invalid match ID", err)
					return
				}

				var req submitSpiritRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}

				actorID, _ := middleware.GetUserIDFromContext(r.Context())
				score, err := spiritService.SubmitSpiritScore(r.Context(), id, req.ScoredTeamID, req.SpiritSubScores, req.Comments, actorID)
				if err != nil {
					writeLeagueError(w, err, "Failed to submit spirit score")
					return
				}
				httputil.WriteJSON(w, http.StatusCreated, score)
			})
		})
	})

	r.Get("/auth/{provider}", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothic.BeginAuthHandler(w, r)
	})

	r.Get("/auth/{provider}/callback", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothUser, err := gothic.CompleteUserAuth(w, r)
		if err != nil {
			httputil.BadRequest(w, "Authentication failure", err)
			return
		}

		user, err := userService.FindOrCreateUserByProvider(r.Context(), gothUser)
		if err != nil {
			httputil.InternalServerError(w, "Failed to find or create user", err)
			return
		}

		sessionManager.Put(r.Context(), "userID", user.ID.String())
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Post("/auth/guest", func(w http.ResponseWriter, r *http.Request) {
		user, err := userService.EnsureGuestUser(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to login as guest", err)
			return
		}

		sessionManager.Put(r.Context(), "userID", user.ID.String())
		httputil.WriteJSON(w, http.StatusOK, user)
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		sessionManager.Destroy(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

// writeLeagueError maps the scheduling and lifecycle error taxonomy onto
// HTTP statuses. Anything unrecognized is a 500.
func writeLeagueError(w http.ResponseWriter, err error, msg string) {
	var scheduleErr *league.InvalidScheduleInputError
	var validationErr *league.ValidationError
	var transitionErr *league.InvalidTransitionError
	var blockedErr *league.EligibilityBlockedError

	switch {
	case errors.Is(err, league.ErrNotFound):
		httputil.NotFound(w, msg, err)
	case errors.As(err, &scheduleErr):
		httputil.UnprocessableEntity(w, scheduleErr.Error(), err)
	case errors.As(err, &validationErr):
		httputil.UnprocessableEntity(w, validationErr.Error(), err)
	case errors.As(err, &blockedErr):
		httputil.Conflict(w, "ELIGIBILITY_BLOCKED", "Teams have outstanding spirit scores", blockedErr.TeamPending)
	case errors.Is(err, league.ErrDuplicateSubmission):
		httputil.Conflict(w, "DUPLICATE_SUBMISSION", "Spirit score already submitted", nil)
	case errors.As(err, &transitionErr):
		httputil.Conflict(w, "INVALID_TRANSITION", transitionErr.Error(), nil)
	default:
		httputil.InternalServerError(w, msg, err)
	}
}
