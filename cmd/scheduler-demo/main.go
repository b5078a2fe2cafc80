// Command scheduler-demo wires a small fixture read-model and schedule
// state through one optimisation session and prints the resulting
// conflict/fitness summary. The scheduling core itself exposes only
// in-process calls (spec §6); the only HTTP surface this command serves is
// the Prometheus scrape endpoint.
package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/conflict"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/resolver"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/session"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/pkg/config"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/pkg/logger"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/pkg/metrics"
)

// wallClock adapts time.Now to model.Timekeeper for this demo process.
type wallClock struct{}

func (wallClock) Now() model.Timestamp { return model.Timestamp{Unix: time.Now().Unix()} }

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

	rm := fixtureReadModel()
	state := fixtureState()
	metricsSession := metrics.NewSession()

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsSession.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil && err != http.ErrServerClosed {
				logr.Sugar().Errorw("metrics server stopped", "error", err)
			}
		}()
		logr.Sugar().Infow("serving prometheus metrics", "addr", cfg.Metrics.Addr)
	}

	sess := session.New(rm, state, wallClock{}, session.Config{
		Detector: conflict.Config{
			MaxPeriodsPerDay: cfg.Detector.MaxPeriodsPerDay,
			MinPrepMinutes:   cfg.Detector.MinPrepMinutes,
			LunchStart:       mustClock("11:00"),
			LunchEnd:         mustClock("13:00"),
			TravelThreshold:  cfg.Detector.TravelThreshold,
		},
		ConstraintWeights: cfg.Fitness.ConstraintWeights,
		Resolver: resolver.Config{
			DefaultSuccessRates:      cfg.Resolver.DefaultSuccessRates,
			AutoApplyConfidenceThres: cfg.Resolver.AutoApplyConfidenceThres,
			MaxAutoResolveIterations: cfg.Resolver.MaxAutoResolveIterations,
		},
	}, metricsSession).WithLogger(logr)

	result := sess.Run(cfg.Resolver.MaxAutoResolveIterations, 0, nil)

	logr.Sugar().Infow("session complete",
		"fitness_score", result.Fitness.Total,
		"active_conflicts", len(result.Report.Conflicts),
		"resolved", result.ResolverResult.ResolvedCount,
		"remaining", result.ResolverResult.Remaining,
	)
	fmt.Printf("fitness: %.2f  conflicts: %d  resolved: %d  remaining: %d\n",
		result.Fitness.Total, len(result.Report.Conflicts), result.ResolverResult.ResolvedCount, result.ResolverResult.Remaining)
}

func mustClock(raw string) calendar.Clock {
	c, err := calendar.ParseClock(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func fixtureReadModel() *model.ReadModel {
	teacher := model.Teacher{
		ID: "t1", Name: "A. Rivera", Department: "Science", Active: true,
		Certifications: []model.Certification{{Subject: "Biology"}},
	}
	room := model.Room{ID: "r1", Number: "101", Building: "Main", Zone: "A", Capacity: 30, Type: model.RoomScienceLab}
	course := model.Course{ID: "c1", Name: "Biology", Subject: model.SubjectScience, Level: model.LevelHighSchool, MaxStudents: 30, RequiredCertifications: []string{"Biology"}, Credits: 1}

	return model.NewReadModel(model.Snapshot{
		Teachers: []model.Teacher{teacher},
		Rooms:    []model.Room{room},
		Courses:  []model.Course{course},
		Sections: map[string][]model.CourseSection{
			"c1": {{ID: "sec1", CourseID: "c1", AssignedPeriod: 1, MaxEnrolment: 30, Status: model.SectionScheduled}},
		},
	})
}

func fixtureState() *schedule.State {
	state := schedule.NewState()
	slot := model.Slot{
		ID: "s1", CourseID: "c1", SectionID: "sec1", TeacherID: "t1", RoomID: "r1",
		Day: calendar.Monday, Start: mustClock("09:00"), End: mustClock("09:50"), PeriodNumber: 1,
	}
	if _, err := state.AddSlot(slot); err != nil {
		log.Fatalf("failed to seed fixture slot: %v", err)
	}
	return state
}
