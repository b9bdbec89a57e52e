package services

import (
	"context"
	"testing"
)

func TestServiceManager_Lifecycle(t *testing.T) {
	h := newHarness(t)
	sm := NewServiceManager(Dependencies{
		Repo:      h.repo,
		Logger:    h.logger,
		Validator: h.validator,
		Publisher: h.events,
		Model:     &fakeGenerator{reply: "ok"},
	}, ServiceManagerConfig{})

	if err := sm.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() before Initialize should fail")
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("getter before Initialize should panic")
			}
		}()
		sm.Auth()
	}()

	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if sm.Auth() == nil || sm.Question() == nil || sm.Mentor() == nil || sm.Assist() == nil || sm.Dashboard() == nil || sm.Export() == nil {
		t.Fatal("every service should be available after Initialize")
	}
	if err := sm.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	if err := sm.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := sm.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() after Shutdown should fail")
	}
}
