package services

import (
	"errors"
	"fmt"

	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/realtime"
	"github.com/civicseva/civicseva-api/repositories"
	"gorm.io/gorm"
)

// DefaultVerifyThreshold is the vote count at which a report earns the
// community verified badge.
const DefaultVerifyThreshold = 3

// VoteSummary is the derived view of a report's vote set for one viewer.
type VoteSummary struct {
	ReportID          uint
	Count             int
	HasVoted          bool
	CommunityVerified bool
}

type VoteService struct {
	repos     *repositories.Repos
	hub       *realtime.Hub
	threshold int
}

func NewVoteService(repos *repositories.Repos, hub *realtime.Hub, threshold int) *VoteService {
	if threshold <= 0 {
		threshold = DefaultVerifyThreshold
	}
	return &VoteService{repos: repos, hub: hub, threshold: threshold}
}

// Upvote adds the voter to the report's vote set. Voting twice is a no-op:
// the store's unique index drops the duplicate and the operation still
// succeeds, so concurrent double-taps cannot inflate the count. The voter's
// email is snapshotted from their account; a failed lookup leaves it empty
// rather than blocking the vote.
func (s *VoteService) Upvote(reportID, voterID uint) (VoteSummary, error) {
	if err := s.ensureReportExists(reportID); err != nil {
		return VoteSummary{}, err
	}

	vote := &models.ReportVote{
		ReportID: reportID,
		VoterID:  voterID,
	}
	if user, err := s.repos.User.GetUserByID(voterID); err == nil {
		vote.VoterEmail = user.Email
	}
	if err := s.repos.Vote.Upsert(vote); err != nil {
		return VoteSummary{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return s.publishSummary(reportID, voterID, realtime.EventInsert)
}

// Unvote removes the voter from the vote set. Removing an absent vote is not
// an error.
func (s *VoteService) Unvote(reportID, voterID uint) (VoteSummary, error) {
	if err := s.ensureReportExists(reportID); err != nil {
		return VoteSummary{}, err
	}

	if err := s.repos.Vote.Delete(reportID, voterID); err != nil {
		return VoteSummary{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return s.publishSummary(reportID, voterID, realtime.EventDelete)
}

// Summary returns the current count and badge state for a viewer.
func (s *VoteService) Summary(reportID, voterID uint) (VoteSummary, error) {
	if err := s.ensureReportExists(reportID); err != nil {
		return VoteSummary{}, err
	}
	return s.buildSummary(reportID, voterID)
}

func (s *VoteService) ensureReportExists(reportID uint) error {
	if _, err := s.repos.Report.FindByID(reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	return nil
}

func (s *VoteService) buildSummary(reportID, voterID uint) (VoteSummary, error) {
	count, err := s.repos.Vote.Count(reportID)
	if err != nil {
		return VoteSummary{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	hasVoted := false
	if voterID != 0 {
		hasVoted, err = s.repos.Vote.HasVoted(reportID, voterID)
		if err != nil {
			return VoteSummary{}, fmt.Errorf("%w: %v", ErrStore, err)
		}
	}

	return VoteSummary{
		ReportID:          reportID,
		Count:             count,
		HasVoted:          hasVoted,
		CommunityVerified: count >= s.threshold,
	}, nil
}

func (s *VoteService) publishSummary(reportID, voterID uint, event realtime.EventType) (VoteSummary, error) {
	summary, err := s.buildSummary(reportID, voterID)
	if err != nil {
		return VoteSummary{}, err
	}

	s.hub.Publish(realtime.Event{
		Type:     event,
		Table:    "report_votes",
		ReportID: reportID,
		Row: map[string]interface{}{
			"report_id":          reportID,
			"vote_count":         summary.Count,
			"community_verified": summary.CommunityVerified,
		},
	})

	return summary, nil
}
