package handler

import (
	"context"
	"sort"
	"sync"

	"rollcall/internal/accounts"
	"rollcall/internal/attendance"
	"rollcall/internal/students"
)

type fakeAccounts struct {
	mu   sync.Mutex
	rows map[string]accounts.Account
}

func (f *fakeAccounts) Create(_ context.Context, acc accounts.Account) (accounts.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[acc.Username]; ok {
		return accounts.Account{}, accounts.ErrDuplicateUsername
	}
	f.rows[acc.Username] = acc
	return acc, nil
}

func (f *fakeAccounts) CreateIfAbsent(ctx context.Context, acc accounts.Account) (bool, error) {
	if _, err := f.Create(ctx, acc); err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeAccounts) FindByUsername(_ context.Context, username string) (*accounts.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.rows[username]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

type fakeStudents struct {
	mu   sync.Mutex
	rows map[string]students.Student
}

func (f *fakeStudents) Insert(_ context.Context, st students.Student) (students.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[st.RollNum]; ok {
		return students.Student{}, students.ErrDuplicateRollNumber
	}
	f.rows[st.RollNum] = st
	return st, nil
}

func (f *fakeStudents) Delete(_ context.Context, rollNum string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[rollNum]
	delete(f.rows, rollNum)
	return ok, nil
}

func (f *fakeStudents) Update(_ context.Context, rollNum string, ch students.Changes) (*students.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.rows[rollNum]
	if !ok {
		return nil, nil
	}
	if ch.Name != nil {
		st.Name = *ch.Name
	}
	if ch.Branch != nil {
		st.Branch = *ch.Branch
	}
	if ch.Year != nil {
		st.Year = *ch.Year
	}
	f.rows[rollNum] = st
	return &st, nil
}

func (f *fakeStudents) List(_ context.Context) ([]students.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []students.Summary
	for _, st := range f.rows {
		out = append(out, students.Summary{Name: st.Name, RollNum: st.RollNum, Branch: st.Branch, Year: st.Year})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RollNum < out[j].RollNum })
	return out, nil
}

type ledgerKey struct{ roll, date string }

type fakeLedger struct {
	mu   sync.Mutex
	rows map[ledgerKey]attendance.Record
}

func (f *fakeLedger) Upsert(_ context.Context, rec attendance.Record) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := ledgerKey{rec.RollNum, rec.Date}
	if existing, ok := f.rows[k]; ok {
		existing.Status = rec.Status
		existing.Version++
		f.rows[k] = existing
		return false, existing.Version, nil
	}
	rec.Version = 1
	f.rows[k] = rec
	return true, 1, nil
}

func (f *fakeLedger) Get(_ context.Context, rollNum, date string) (*attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.rows[ledgerKey{rollNum, date}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeLedger) DailySummary(_ context.Context, date string) (attendance.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := attendance.Summary{Date: date}
	for k, rec := range f.rows {
		if k.date != date {
			continue
		}
		if rec.Status == attendance.Present {
			sum.Present++
		} else {
			sum.Absent++
		}
	}
	return sum, nil
}

type staticChecker bool

func (s staticChecker) Healthy(context.Context) bool { return bool(s) }
