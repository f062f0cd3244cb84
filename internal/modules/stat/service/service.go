package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	complaintRepo "github.com/rahulpatel51/hostel-management/internal/modules/complaint/repository"
	feeRepo "github.com/rahulpatel51/hostel-management/internal/modules/fee/repository"
	leaveRepo "github.com/rahulpatel51/hostel-management/internal/modules/leave/repository"
	roomRepo "github.com/rahulpatel51/hostel-management/internal/modules/room/repository"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
)

const (
	dashboardCacheKey = "stats:dashboard"
	dashboardCacheTTL = 5 * time.Minute
)

// Dashboard is the admin home screen snapshot.
type Dashboard struct {
	Students          int64                      `json:"students"`
	Wardens           int64                      `json:"wardens"`
	Occupancy         *roomRepo.OccupancySummary `json:"occupancy"`
	PendingComplaints int64                      `json:"pending_complaints"`
	PendingLeaves     int64                      `json:"pending_leaves"`
	PendingFeesTotal  int64                      `json:"pending_fees_total"`
	CollectedTotal    int64                      `json:"collected_total"`
	GeneratedAt       time.Time                  `json:"generated_at"`
}

type StatService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type statService struct {
	users       userRepo.UserRepository
	rooms       roomRepo.RoomRepository
	complaints  complaintRepo.ComplaintRepository
	leaves      leaveRepo.LeaveRepository
	fees        feeRepo.FeeRepository
	redisClient *redis.Client
}

func NewStatService(
	users userRepo.UserRepository,
	rooms roomRepo.RoomRepository,
	complaints complaintRepo.ComplaintRepository,
	leaves leaveRepo.LeaveRepository,
	fees feeRepo.FeeRepository,
	redisClient *redis.Client,
) StatService {
	return &statService{
		users:       users,
		rooms:       rooms,
		complaints:  complaints,
		leaves:      leaves,
		fees:        fees,
		redisClient: redisClient,
	}
}

// Dashboard serves the cached snapshot when fresh; otherwise it recounts
// and re-caches. Counts being up to five minutes stale is acceptable here.
func (s *statService) Dashboard(ctx context.Context) (*Dashboard, error) {
	// Cache miss and Redis trouble both fall through to a live recount.
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, dashboardCacheKey).Result()
		if err == nil {
			var dashboard Dashboard
			if err := json.Unmarshal([]byte(cached), &dashboard); err == nil {
				return &dashboard, nil
			}
		}
	}

	dashboard, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(dashboard); err == nil {
			s.redisClient.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
		}
	}

	return dashboard, nil
}

func (s *statService) collect(ctx context.Context) (*Dashboard, error) {
	students, err := s.users.CountByRole(ctx, entity.RoleStudent)
	if err != nil {
		return nil, err
	}
	wardens, err := s.users.CountByRole(ctx, entity.RoleWarden)
	if err != nil {
		return nil, err
	}
	occupancy, err := s.rooms.OccupancySummary(ctx)
	if err != nil {
		return nil, err
	}
	pendingComplaints, err := s.complaints.CountByStatus(ctx, entity.ComplaintPending)
	if err != nil {
		return nil, err
	}
	pendingLeaves, err := s.leaves.CountByStatus(ctx, entity.LeavePending)
	if err != nil {
		return nil, err
	}
	pendingFees, err := s.fees.SumByStatus(ctx, entity.FeePending)
	if err != nil {
		return nil, err
	}
	collected, err := s.fees.SumByStatus(ctx, entity.FeePaid)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Students:          students,
		Wardens:           wardens,
		Occupancy:         occupancy,
		PendingComplaints: pendingComplaints,
		PendingLeaves:     pendingLeaves,
		PendingFeesTotal:  pendingFees,
		CollectedTotal:    collected,
		GeneratedAt:       time.Now(),
	}, nil
}
