package httpapi

import (
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/match"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/riskibarqy/futsal-club/internal/domain/rating"
	"github.com/riskibarqy/futsal-club/internal/domain/session"
	"github.com/riskibarqy/futsal-club/internal/domain/standing"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
	"github.com/riskibarqy/futsal-club/internal/usecase"
)

const sessionDateLayout = "2006-01-02"

type createPlayerRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Role    string `json:"role" validate:"omitempty,max=20"`
	IsGuest bool   `json:"isGuest"`
}

type updatePlayerRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=100"`
	Role    *string `json:"role" validate:"omitempty,max=20"`
	IsGuest *bool   `json:"isGuest"`
}

type submitRatingRequest struct {
	RaterID string         `json:"raterId" validate:"required"`
	Skills  map[string]int `json:"skills" validate:"required,min=1"`
	Comment string         `json:"comment" validate:"max=500"`
}

type createSessionRequest struct {
	Date  string `json:"date" validate:"required"`
	Venue string `json:"venue" validate:"max=120"`
}

type refRequest struct {
	PlayerID  string `json:"playerId" validate:"required_without=GuestName"`
	GuestName string `json:"guestName" validate:"max=100"`
}

type attendanceRequest struct {
	Attendees []refRequest `json:"attendees" validate:"required,dive"`
}

type sessionMVPRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type balanceTeamsRequest struct {
	TeamCount int `json:"teamCount" validate:"required"`
}

type teamRequest struct {
	Name      string       `json:"name" validate:"max=50"`
	VestColor string       `json:"vestColor" validate:"max=20"`
	Members   []refRequest `json:"members" validate:"required,min=1,dive"`
}

type replaceTeamsRequest struct {
	Teams []teamRequest `json:"teams" validate:"required,min=2,dive"`
}

type addEventRequest struct {
	Type       string `json:"type" validate:"required"`
	TeamID     string `json:"teamId" validate:"required"`
	PlayerID   string `json:"playerId"`
	GuestName  string `json:"guestName" validate:"max=100"`
	AssisterID string `json:"assisterId"`
	Minute     int    `json:"minute" validate:"min=0"`
}

type overrideScoreRequest struct {
	Score1 *int `json:"score1" validate:"required,min=0"`
	Score2 *int `json:"score2" validate:"required,min=0"`
}

type matchStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type playerDTO struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	IsGuest   bool           `json:"isGuest"`
	Skills    map[string]int `json:"skills"`
	Overall   float64        `json:"overall"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type ratingDTO struct {
	RaterID   string         `json:"raterId"`
	PlayerID  string         `json:"playerId"`
	Skills    map[string]int `json:"skills"`
	Comment   string         `json:"comment,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type ratingResultDTO struct {
	Rating  ratingDTO                `json:"rating"`
	Player  playerDTO                `json:"player"`
	Effects usecase.SecondaryEffects `json:"effects"`
}

type ratingDeletionDTO struct {
	Player  playerDTO                `json:"player"`
	Effects usecase.SecondaryEffects `json:"effects"`
}

type refDTO struct {
	PlayerID  string `json:"playerId,omitempty"`
	GuestName string `json:"guestName,omitempty"`
}

type sessionDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Year        int    `json:"year"`
	Venue       string `json:"venue,omitempty"`
	MVPPlayerID string `json:"mvpPlayerId,omitempty"`
}

type sessionDetailDTO struct {
	Session    sessionDTO `json:"session"`
	Attendance []refDTO   `json:"attendance"`
	Teams      []teamDTO  `json:"teams"`
}

type sessionMutationDTO struct {
	Session    sessionDTO               `json:"session"`
	Attendance []refDTO                 `json:"attendance"`
	Effects    usecase.SecondaryEffects `json:"effects"`
}

type teamDTO struct {
	ID        string   `json:"id"`
	SessionID string   `json:"sessionId"`
	Name      string   `json:"name"`
	VestColor string   `json:"vestColor"`
	Type      string   `json:"type"`
	KeyPlayer *refDTO  `json:"keyPlayer,omitempty"`
	Members   []refDTO `json:"members"`
}

type teamSetDTO struct {
	Teams        []teamDTO                `json:"teams"`
	BalanceScore float64                  `json:"balanceScore"`
	Matches      []matchDTO               `json:"matches"`
	Effects      usecase.SecondaryEffects `json:"effects"`
}

type matchDTO struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	MatchNo   int    `json:"matchNo"`
	Team1ID   string `json:"team1Id"`
	Team2ID   string `json:"team2Id"`
	Score1    int    `json:"score1"`
	Score2    int    `json:"score2"`
	Status    string `json:"status"`
}

type fixtureSetDTO struct {
	Matches []matchDTO               `json:"matches"`
	Effects usecase.SecondaryEffects `json:"effects"`
}

type matchMutationDTO struct {
	Match   matchDTO                 `json:"match"`
	Effects usecase.SecondaryEffects `json:"effects"`
}

type eventDTO struct {
	ID         string    `json:"id"`
	MatchID    string    `json:"matchId"`
	Type       string    `json:"type"`
	TeamID     string    `json:"teamId"`
	PlayerID   string    `json:"playerId,omitempty"`
	GuestName  string    `json:"guestName,omitempty"`
	AssisterID string    `json:"assisterId,omitempty"`
	Minute     int       `json:"minute"`
	CreatedAt  time.Time `json:"createdAt"`
}

type eventMutationDTO struct {
	Event   eventDTO                 `json:"event"`
	Match   matchDTO                 `json:"match"`
	Effects usecase.SecondaryEffects `json:"effects"`
}

type rankingDTO struct {
	Year        int             `json:"year"`
	RefreshedAt time.Time       `json:"refreshedAt"`
	RefreshedBy string          `json:"refreshedBy"`
	Entries     []ranking.Entry `json:"entries"`
}

type leaderboardDTO struct {
	Year     int             `json:"year"`
	Category string          `json:"category"`
	Entries  []ranking.Entry `json:"entries"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:        v.ID,
		Name:      v.Name,
		Role:      string(v.Role),
		IsGuest:   v.IsGuest,
		Skills:    v.Skills.ToMap(),
		Overall:   v.Overall(),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	return out
}

func ratingToDTO(v rating.Rating) ratingDTO {
	return ratingDTO{
		RaterID:   v.RaterID,
		PlayerID:  v.PlayerID,
		Skills:    v.Skills.ToMap(),
		Comment:   v.Comment,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func refToDTO(v player.Ref) refDTO {
	return refDTO{PlayerID: v.PlayerID, GuestName: v.GuestName}
}

func refsToDTO(items []player.Ref) []refDTO {
	out := make([]refDTO, 0, len(items))
	for _, item := range items {
		out = append(out, refToDTO(item))
	}
	return out
}

func refsFromRequest(items []refRequest) []player.Ref {
	out := make([]player.Ref, 0, len(items))
	for _, item := range items {
		if item.PlayerID != "" {
			out = append(out, player.PlayerRef(item.PlayerID))
			continue
		}
		out = append(out, player.GuestRef(item.GuestName))
	}
	return out
}

func sessionToDTO(v session.Session) sessionDTO {
	return sessionDTO{
		ID:          v.ID,
		Date:        v.Date.Format(sessionDateLayout),
		Year:        v.Year(),
		Venue:       v.Venue,
		MVPPlayerID: v.MVPPlayerID,
	}
}

func sessionMutationToDTO(v usecase.SessionMutation) sessionMutationDTO {
	return sessionMutationDTO{
		Session:    sessionToDTO(v.Session),
		Attendance: refsToDTO(v.Attendance),
		Effects:    v.Effects,
	}
}

func teamToDTO(v team.Team) teamDTO {
	out := teamDTO{
		ID:        v.ID,
		SessionID: v.SessionID,
		Name:      v.Name,
		VestColor: v.VestColor,
		Type:      string(v.Type),
		Members:   refsToDTO(v.Members),
	}
	if v.KeyPlayer != nil {
		key := refToDTO(*v.KeyPlayer)
		out.KeyPlayer = &key
	}
	return out
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	return out
}

func teamSetToDTO(v usecase.TeamSetResult) teamSetDTO {
	return teamSetDTO{
		Teams:        teamsToDTO(v.Teams),
		BalanceScore: v.BalanceScore,
		Matches:      matchesToDTO(v.Matches),
		Effects:      v.Effects,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:        v.ID,
		SessionID: v.SessionID,
		MatchNo:   v.MatchNo,
		Team1ID:   v.Team1ID,
		Team2ID:   v.Team2ID,
		Score1:    v.Score1,
		Score2:    v.Score2,
		Status:    string(v.Status),
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func eventToDTO(v match.Event) eventDTO {
	return eventDTO{
		ID:         v.ID,
		MatchID:    v.MatchID,
		Type:       string(v.Type),
		TeamID:     v.TeamID,
		PlayerID:   v.Actor.PlayerID,
		GuestName:  v.Actor.GuestName,
		AssisterID: v.AssisterID,
		Minute:     v.Minute,
		CreatedAt:  v.CreatedAt,
	}
}

func rankingToDTO(v ranking.Snapshot) rankingDTO {
	entries := v.Entries
	if entries == nil {
		entries = []ranking.Entry{}
	}
	return rankingDTO{
		Year:        v.Year,
		RefreshedAt: v.RefreshedAt,
		RefreshedBy: v.RefreshedBy,
		Entries:     entries,
	}
}

func standingsOrEmpty(rows []standing.Row) []standing.Row {
	if rows == nil {
		return []standing.Row{}
	}
	return rows
}
