package cron

import (
	"Balgil/internal/job"
	"testing"
)

func TestRegisterJobs(t *testing.T) {
	j := job.NewRouteSessionJob(nil, nil)

	m := NewCronManager("0 0 4 * * *", j)
	if err := m.RegisterJobs(); err != nil {
		t.Fatal(err)
	}
	if n := len(m.engine.Entries()); n != 1 {
		t.Fatalf("entries = %d, want 1", n)
	}

	if err := NewCronManager("0 4 * * *", j).RegisterJobs(); err == nil {
		t.Fatal("five-field spec should be rejected when seconds are enabled")
	}

	empty := NewCronManager("", j)
	if err := empty.RegisterJobs(); err != nil || len(empty.engine.Entries()) != 0 {
		t.Fatalf("empty spec registered %d entries, err %v", len(empty.engine.Entries()), err)
	}
}
