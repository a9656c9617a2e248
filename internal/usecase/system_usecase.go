package usecase

import (
	"context"
	"time"

	repo "inventory/internal/repository"
)

type SystemUsecase struct {
	system repo.SystemRepository
	port   string
	now    func() time.Time
}

func NewSystemUsecase(system repo.SystemRepository, port string) *SystemUsecase {
	return &SystemUsecase{system: system, port: port, now: time.Now}
}

type HealthOutput struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Port      string    `json:"port"`
}

type DBTestOutput struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// DBには触らない
func (u *SystemUsecase) Health() HealthOutput {
	return HealthOutput{
		Status:    "OK",
		Message:   "Backend is running",
		Timestamp: u.now().UTC(),
		Port:      u.port,
	}
}

func (u *SystemUsecase) DBTest(ctx context.Context) (DBTestOutput, error) {
	v, err := u.system.Version(ctx)
	if err != nil {
		return DBTestOutput{}, dbError(err)
	}
	return DBTestOutput{
		Status:  "OK",
		Message: "Database connection successful",
		Version: v,
	}, nil
}
