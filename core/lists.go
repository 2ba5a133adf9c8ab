package core

import (
	"context"

	"github.com/google/uuid"
)

type ListService struct {
	lists ListStore
}

func NewListService(lists ListStore) *ListService {
	return &ListService{lists: lists}
}

func (s *ListService) CreateList(ctx context.Context, in ListCreate) (ToDoList, error) {
	return s.lists.CreateList(ctx, in)
}

func (s *ListService) GetList(ctx context.Context, id uuid.UUID) (ToDoList, error) {
	l, ok, err := s.lists.GetList(ctx, id)
	if err != nil {
		return ToDoList{}, err
	}
	if !ok {
		return ToDoList{}, listNotFound(id)
	}
	return l, nil
}

func (s *ListService) UpdateList(ctx context.Context, id uuid.UUID, u ListUpdate) (ToDoList, error) {
	l, ok, err := s.lists.UpdateList(ctx, id, u)
	if err != nil {
		return ToDoList{}, err
	}
	if !ok {
		return ToDoList{}, listNotFound(id)
	}
	return l, nil
}

// DeleteList removes the list and, through the store, every task in it.
func (s *ListService) DeleteList(ctx context.Context, id uuid.UUID) error {
	ok, err := s.lists.DeleteList(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return listNotFound(id)
	}
	return nil
}

// ListAll returns every list in store order.
func (s *ListService) ListAll(ctx context.Context) ([]ToDoList, error) {
	return s.lists.ListLists(ctx)
}
