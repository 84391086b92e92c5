package feedback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"travelease/model"
	feedbackrepo "travelease/repository/feedback"
	"travelease/repository/storage"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	submitFn    func(ctx context.Context, req model.FeedbackReq) (string, error)
	adminListFn func(ctx context.Context, token string) ([]model.Feedback, error)
}

var _ feedbackrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Submit(ctx context.Context, req model.FeedbackReq) (string, error) {
	return m.submitFn(ctx, req)
}

func (m *mockRepo) AdminList(ctx context.Context, token string) ([]model.Feedback, error) {
	return m.adminListFn(ctx, token)
}

func req() model.FeedbackReq {
	return model.FeedbackReq{Name: " Asha ", Email: "a@x.io", Subject: "Great", Description: "Smooth ride"}
}

func TestSubmit_NewestFirst(t *testing.T) {
	ctx := context.Background()
	n := 0
	svc := New(&mockRepo{submitFn: func(ctx context.Context, r model.FeedbackReq) (string, error) {
		n++
		if n == 2 {
			return "", nil
		}
		return "11", nil
	}}, storage.NewMemory(0), nil)

	f, err := svc.Submit(ctx, "s1", req())
	require.NoError(t, err)
	require.Equal(t, "11", f.ID)
	require.Equal(t, "Asha", f.Name)

	second := req()
	second.Subject = "Again"
	f2, err := svc.Submit(ctx, "s1", second)
	require.NoError(t, err)
	require.Regexp(t, `^f\d+$`, f2.ID)

	list, err := svc.Recent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Again", list[0].Subject)
}

func TestSubmit_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{submitFn: func(ctx context.Context, r model.FeedbackReq) (string, error) {
		return "", errors.New("down")
	}}, storage.NewMemory(0), nil)

	r := req()
	r.Description = "  "
	_, err := svc.Submit(ctx, "s1", r)
	require.Equal(t, MsgFillAll, Message(err))

	_, err = svc.Submit(ctx, "s1", req())
	require.Equal(t, ErrBackend, Code(err))
	list, err := svc.Recent(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestAdminList_Sorted(t *testing.T) {
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := New(&mockRepo{adminListFn: func(ctx context.Context, token string) ([]model.Feedback, error) {
		return []model.Feedback{{ID: "a", Date: old}, {ID: "b", Date: old.AddDate(0, 1, 0)}}, nil
	}}, storage.NewMemory(0), nil)
	list, err := svc.AdminList(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "b", list[0].ID)
}

func TestRecent_PerSession(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{submitFn: func(ctx context.Context, r model.FeedbackReq) (string, error) {
		return "", nil
	}}, storage.NewMemory(0), nil)

	a := req()
	a.Email = "asha@x.io"
	_, err := svc.Submit(ctx, "sid-a", a)
	require.NoError(t, err)

	b := req()
	b.Email = "ravi@x.io"
	_, err = svc.Submit(ctx, "sid-b", b)
	require.NoError(t, err)

	listA, err := svc.Recent(ctx, "sid-a")
	require.NoError(t, err)
	require.Len(t, listA, 1)
	require.Equal(t, "asha@x.io", listA[0].Email)

	listB, err := svc.Recent(ctx, "sid-b")
	require.NoError(t, err)
	require.Len(t, listB, 1)
	require.Equal(t, "ravi@x.io", listB[0].Email)

	none, err := svc.Recent(ctx, "sid-c")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestSubmit_ConcurrentKeepsAllUpToCap(t *testing.T) {
	ctx := context.Background()
	var mu sync.Mutex
	n := 0
	svc := New(&mockRepo{submitFn: func(ctx context.Context, r model.FeedbackReq) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprint(n), nil
	}}, storage.NewMemory(0), nil)

	var wg sync.WaitGroup
	errs := make(chan error, maxRecent)
	for i := 0; i < maxRecent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, "s1", req())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := svc.Recent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, maxRecent)

	for i := 0; i < 5; i++ {
		_, err := svc.Submit(ctx, "s1", req())
		require.NoError(t, err)
	}
	list, err = svc.Recent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, maxRecent)
	require.Equal(t, fmt.Sprint(maxRecent+5), list[0].ID)
}
