package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/hostel-api/internal/models"
	"github.com/noah-isme/hostel-api/internal/repository"
	"github.com/noah-isme/hostel-api/pkg/config"
	"github.com/noah-isme/hostel-api/pkg/database"
	"github.com/noah-isme/hostel-api/pkg/logger"
)

const (
	defaultPassword = "password123"
	roomsPerBlock   = 10
	roomCapacity    = 4
)

// blockAID is stable so repeated runs find the same block.
var blockAID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("hostel-api:block:A")).String()

type seeder struct {
	users    *repository.UserRepository
	blocks   *repository.BlockRepository
	rooms    *repository.RoomRepository
	students *repository.StudentRepository
	hash     string
	logger   *zap.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		logr.Fatal("failed to hash password", zap.Error(err))
	}

	s := &seeder{
		users:    repository.NewUserRepository(db),
		blocks:   repository.NewBlockRepository(db),
		rooms:    repository.NewRoomRepository(db),
		students: repository.NewStudentRepository(db),
		hash:     string(hash),
		logger:   logr,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.run(ctx); err != nil {
		logr.Fatal("seed failed", zap.Error(err))
	}

	logr.Info("seed complete",
		zap.Strings("accounts", []string{"admin@hostel.com", "warden@hostel.com", "student@hostel.com"}),
		zap.String("password", defaultPassword),
	)
}

func (s *seeder) run(ctx context.Context) error {
	if _, err := s.ensureUser(ctx, "admin@hostel.com", "Admin User", models.RoleAdmin); err != nil {
		return err
	}

	if err := s.ensureBlock(ctx); err != nil {
		return err
	}

	warden, err := s.ensureUser(ctx, "warden@hostel.com", "Warden User", models.RoleWarden)
	if err != nil {
		return err
	}
	blockID := blockAID
	if err := s.blocks.UpsertWarden(ctx, &models.Warden{UserID: warden.ID, BlockID: &blockID}); err != nil {
		return err
	}
	s.logger.Info("warden assigned", zap.String("email", warden.Email), zap.String("blockId", blockID))

	if err := s.ensureStudent(ctx); err != nil {
		return err
	}

	for i := 1; i <= roomsPerBlock; i++ {
		room := &models.Room{RoomNumber: fmt.Sprintf("A-%03d", i), Capacity: roomCapacity, BlockID: blockAID}
		if err := s.rooms.Create(ctx, room); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return err
		}
	}
	s.logger.Info("rooms ready", zap.Int("count", roomsPerBlock), zap.String("block", "Block A"))
	return nil
}

func (s *seeder) ensureUser(ctx context.Context, email, name string, role models.UserRole) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	user := &models.User{Email: email, PasswordHash: s.hash, FullName: name, Role: role, Active: true}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.String("email", email), zap.String("role", string(role)))
	return user, nil
}

func (s *seeder) ensureBlock(ctx context.Context) error {
	if _, err := s.blocks.FindByID(ctx, blockAID); err == nil {
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return s.blocks.Create(ctx, &models.Block{ID: blockAID, Name: "Block A"})
}

func (s *seeder) ensureStudent(ctx context.Context) error {
	const email = "student@hostel.com"
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if _, err := s.students.FindByUserID(ctx, existing.ID); err == nil {
			return nil
		}
		return fmt.Errorf("user %s exists without a student record", email)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	user := &models.User{Email: email, PasswordHash: s.hash, FullName: "Student User", Role: models.RoleStudent, Active: true}
	student := &models.Student{RollNo: "STU001", ParentContact: "+1234567890"}
	if err := s.students.CreateWithUser(ctx, user, student, ""); err != nil {
		return err
	}
	s.logger.Info("student created", zap.String("email", email), zap.String("rollNo", student.RollNo))
	return nil
}
