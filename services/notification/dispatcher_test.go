package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"medivault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStore implements userRepo.UserRepository over a single user.
type fakeUserStore struct {
	mu   sync.Mutex
	user models.User
	err  error
}

func (f *fakeUserStore) Create(user *models.User) error { return nil }
func (f *fakeUserStore) Update(user *models.User) error { return nil }
func (f *fakeUserStore) Delete(id string) error         { return nil }

func (f *fakeUserStore) GetByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if id != f.user.ID {
		return nil, fmt.Errorf("user not found")
	}
	u := f.user
	return &u, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserStore) AddPushSubscription(userID string, sub models.PushSubscription) error {
	return nil
}

func (f *fakeUserStore) RemovePushSubscription(userID, endpoint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.user.Subscriptions[:0]
	for _, s := range f.user.Subscriptions {
		if s.Endpoint != endpoint {
			kept = append(kept, s)
		}
	}
	f.user.Subscriptions = kept
	return nil
}

func (f *fakeUserStore) GetPushSubscriptions(userID string) ([]models.PushSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user.Subscriptions, nil
}

func (f *fakeUserStore) subscriptionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.user.Subscriptions)
}

// fakeMedStore implements medicationRepo.MedicationRepository over one row.
type fakeMedStore struct {
	med models.Medication
	err error
}

func (f *fakeMedStore) Create(med *models.Medication) error { return nil }
func (f *fakeMedStore) Update(med *models.Medication) error { return nil }
func (f *fakeMedStore) Delete(id string) error              { return nil }

func (f *fakeMedStore) GetByID(id string) (*models.Medication, error) {
	if f.err != nil {
		return nil, f.err
	}
	m := f.med
	return &m, nil
}

func (f *fakeMedStore) GetByUserID(userID string) ([]models.Medication, error) {
	return []models.Medication{f.med}, nil
}

// fakePush returns a canned outcome per endpoint.
type fakePush struct {
	mu       sync.Mutex
	outcomes map[string]Outcome
	calls    []string
}

func (f *fakePush) Send(ctx context.Context, sub models.PushSubscription, msg Message) Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sub.Endpoint)
	return f.outcomes[sub.Endpoint]
}

// fakeEmail returns a canned outcome.
type fakeEmail struct {
	mu      sync.Mutex
	outcome Outcome
	sentTo  []string
}

func (f *fakeEmail) Send(ctx context.Context, address string, msg Message) Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentTo = append(f.sentTo, address)
	return f.outcome
}

func testReminder() models.Reminder {
	return models.Reminder{
		ID:            "rem-1",
		MedicationID:  "med-1",
		UserID:        "user-1",
		ScheduledTime: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		Status:        models.ReminderStatusPending,
	}
}

func testFixtures(subs ...models.PushSubscription) (*fakeUserStore, *fakeMedStore) {
	users := &fakeUserStore{user: models.User{
		ID:             "user-1",
		Name:           "Ada",
		Email:          "ada@example.com",
		Language:       "en",
		EmailReminders: true,
		Subscriptions:  subs,
	}}
	meds := &fakeMedStore{med: models.Medication{
		ID:     "med-1",
		UserID: "user-1",
		Name:   "Metformin",
		Dosage: "500mg",
		Status: models.MedicationStatusActive,
	}}
	return users, meds
}

func sub(endpoint string) models.PushSubscription {
	return models.PushSubscription{ID: "sub-" + endpoint, UserID: "user-1", Endpoint: endpoint}
}

func TestDispatchReminder_AnySuccessMeansDelivered(t *testing.T) {
	users, meds := testFixtures(sub("a"), sub("b"))
	push := &fakePush{outcomes: map[string]Outcome{"a": OutcomeTransient, "b": OutcomeSuccess}}
	email := &fakeEmail{outcome: OutcomeTransient}
	svc := &DefaultNotificationService{Users: users, Medications: meds, Push: push, Email: email}

	result, err := svc.DispatchReminder(context.Background(), testReminder())
	require.NoError(t, err)
	assert.Equal(t, ResultDelivered, result)
	assert.Len(t, push.calls, 2)
	assert.Equal(t, []string{"ada@example.com"}, email.sentTo)
}

func TestDispatchReminder_GoneSubscriptionIsRemoved(t *testing.T) {
	users, meds := testFixtures(sub("dead"), sub("alive"))
	push := &fakePush{outcomes: map[string]Outcome{"dead": OutcomePermanent, "alive": OutcomeSuccess}}
	svc := &DefaultNotificationService{Users: users, Medications: meds, Push: push}

	result, err := svc.DispatchReminder(context.Background(), testReminder())
	require.NoError(t, err)
	assert.Equal(t, ResultDelivered, result)

	remaining, err := users.GetPushSubscriptions("user-1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "alive", remaining[0].Endpoint)
}

func TestDispatchReminder_AllPermanentMeansSkipped(t *testing.T) {
	users, meds := testFixtures(sub("dead1"), sub("dead2"))
	users.user.EmailReminders = false
	push := &fakePush{outcomes: map[string]Outcome{"dead1": OutcomePermanent, "dead2": OutcomePermanent}}
	svc := &DefaultNotificationService{Users: users, Medications: meds, Push: push}

	result, err := svc.DispatchReminder(context.Background(), testReminder())
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, result)
	assert.Equal(t, 0, users.subscriptionCount())
}

func TestDispatchReminder_TransientMeansRetry(t *testing.T) {
	users, meds := testFixtures(sub("flaky"))
	users.user.EmailReminders = false
	push := &fakePush{outcomes: map[string]Outcome{"flaky": OutcomeTransient}}
	svc := &DefaultNotificationService{Users: users, Medications: meds, Push: push}

	result, err := svc.DispatchReminder(context.Background(), testReminder())
	require.NoError(t, err)
	assert.Equal(t, ResultRetry, result)
	assert.Equal(t, 1, users.subscriptionCount(), "transient failures must keep the subscription")
}

func TestDispatchReminder_PermanentPushButTransientEmail(t *testing.T) {
	users, meds := testFixtures(sub("dead"))
	push := &fakePush{outcomes: map[string]Outcome{"dead": OutcomePermanent}}
	email := &fakeEmail{outcome: OutcomeTransient}
	svc := &DefaultNotificationService{Users: users, Medications: meds, Push: push, Email: email}

	result, err := svc.DispatchReminder(context.Background(), testReminder())
	require.NoError(t, err)
	assert.Equal(t, ResultRetry, result)
	assert.Equal(t, 0, users.subscriptionCount())
}

func TestDispatchReminder_NoDestinations(t *testing.T) {
	users, meds := testFixtures()
	users.user.EmailReminders = false
	svc := &DefaultNotificationService{Users: users, Medications: meds, Push: &fakePush{}, Email: &fakeEmail{}}

	result, err := svc.DispatchReminder(context.Background(), testReminder())
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, result)
}

func TestDispatchReminder_EmailOptOutSkipsEmail(t *testing.T) {
	users, meds := testFixtures(sub("a"))
	users.user.EmailReminders = false
	push := &fakePush{outcomes: map[string]Outcome{"a": OutcomeSuccess}}
	email := &fakeEmail{outcome: OutcomeSuccess}
	svc := &DefaultNotificationService{Users: users, Medications: meds, Push: push, Email: email}

	result, err := svc.DispatchReminder(context.Background(), testReminder())
	require.NoError(t, err)
	assert.Equal(t, ResultDelivered, result)
	assert.Empty(t, email.sentTo)
}

func TestDispatchReminder_StorageErrorPropagates(t *testing.T) {
	users, meds := testFixtures(sub("a"))
	users.err = fmt.Errorf("connection reset")
	svc := &DefaultNotificationService{Users: users, Medications: meds, Push: &fakePush{}}

	result, err := svc.DispatchReminder(context.Background(), testReminder())
	assert.Error(t, err)
	assert.Equal(t, ResultRetry, result)
}
