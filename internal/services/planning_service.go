package services

import (
	"gorm.io/gorm"

	"finapp/internal/models"
)

// Defaults for records created without a name or title.
const (
	DefaultEventTitle    = "Nowe wydarzenie"
	DefaultGoalName      = "Cel oszczędnościowy"
	DefaultHoldItemName  = "Nowy zakup"
	DefaultPriorityTitle = "Priorytet"
)

// eventService handles calendar events.
type eventService struct {
	store ownedStore[models.Event]
	now   Clock
}

// NewEventService creates a new EventServicer.
func NewEventService(db *gorm.DB, now Clock) EventServicer {
	if now == nil {
		now = utcNow
	}
	return &eventService{store: ownedStore[models.Event]{db: db}, now: now}
}

func (s *eventService) CreateEvent(userID string, in EventInput) (*models.Event, error) {
	event := &models.Event{
		Owned:     models.Owned{UserID: userID},
		Title:     orDefault(in.Title, DefaultEventTitle),
		StartDate: orDefault(in.Start, s.now().Format(dateLayout)),
		Category:  orDefault(in.Category, DefaultCategory),
	}
	if in.End != "" {
		end := in.End
		event.EndDate = &end
	}
	if err := s.store.create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetUserEvents(userID string) ([]models.Event, error) {
	return s.store.list(userID, orderByCreation)
}

// goalService handles savings goals.
type goalService struct {
	store ownedStore[models.Goal]
	now   Clock
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, now Clock) GoalServicer {
	if now == nil {
		now = utcNow
	}
	return &goalService{store: ownedStore[models.Goal]{db: db}, now: now}
}

func (s *goalService) CreateGoal(userID string, in GoalInput) (*models.Goal, error) {
	target, err := money("targetAmount", in.TargetAmount)
	if err != nil {
		return nil, err
	}
	current, err := money("currentAmount", in.CurrentAmount)
	if err != nil {
		return nil, err
	}

	goal := &models.Goal{
		Owned:         models.Owned{UserID: userID},
		Name:          orDefault(in.Name, DefaultGoalName),
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    orDefault(in.TargetDate, s.now().Format(dateLayout)),
	}
	if err := s.store.create(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) GetUserGoals(userID string) ([]models.Goal, error) {
	return s.store.list(userID, orderByCreation)
}

// holdItemService handles purchases put on hold.
type holdItemService struct {
	store ownedStore[models.HoldItem]
	now   Clock
}

// NewHoldItemService creates a new HoldItemServicer.
func NewHoldItemService(db *gorm.DB, now Clock) HoldItemServicer {
	if now == nil {
		now = utcNow
	}
	return &holdItemService{store: ownedStore[models.HoldItem]{db: db}, now: now}
}

func (s *holdItemService) CreateHoldItem(userID string, in HoldItemInput) (*models.HoldItem, error) {
	price, err := money("price", in.Price)
	if err != nil {
		return nil, err
	}

	item := &models.HoldItem{
		Owned:     models.Owned{UserID: userID},
		Name:      orDefault(in.Name, DefaultHoldItemName),
		Price:     price,
		AddedDate: orDefault(in.AddedDate, s.now().Format(dateLayout)),
	}
	if err := s.store.create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *holdItemService) GetUserHoldItems(userID string) ([]models.HoldItem, error) {
	return s.store.list(userID, orderByCreation)
}

// priorityService handles monthly priorities.
type priorityService struct {
	store ownedStore[models.Priority]
	now   Clock
}

// NewPriorityService creates a new PriorityServicer.
func NewPriorityService(db *gorm.DB, now Clock) PriorityServicer {
	if now == nil {
		now = utcNow
	}
	return &priorityService{store: ownedStore[models.Priority]{db: db}, now: now}
}

func (s *priorityService) CreatePriority(userID, title, month string) (*models.Priority, error) {
	priority := &models.Priority{
		Owned: models.Owned{UserID: userID},
		Title: orDefault(title, DefaultPriorityTitle),
		Month: orDefault(month, s.now().Format(monthLayout)),
	}
	if err := s.store.create(priority); err != nil {
		return nil, err
	}
	return priority, nil
}

func (s *priorityService) GetUserPriorities(userID string) ([]models.Priority, error) {
	return s.store.list(userID, orderByCreation)
}
