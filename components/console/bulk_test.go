package console

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBulkClient struct {
	mu       sync.Mutex
	active   map[int]bool
	deleted  []int
	failIDs  map[int]error
	setCalls int
}

func (c *recordingBulkClient) SetActive(ctx context.Context, id int, active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	if err, ok := c.failIDs[id]; ok {
		return err
	}
	if c.active == nil {
		c.active = map[int]bool{}
	}
	c.active[id] = active
	return nil
}

func (c *recordingBulkClient) Delete(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err, ok := c.failIDs[id]; ok {
		return err
	}
	c.deleted = append(c.deleted, id)
	return nil
}

func TestBulkApplyReportsPerIDOutcomes(t *testing.T) {
	client := &recordingBulkClient{failIDs: map[int]error{5: errors.New("locked")}}
	orch := NewBulkOrchestrator(client, nil)

	report, err := orch.Apply(context.Background(), BulkActivate, []int{3, 5, 9})

	require.Error(t, err)
	assert.Equal(t, []int{3, 9}, report.Succeeded)
	require.Contains(t, report.Failed, 5)
	assert.EqualError(t, report.Failed[5], "locked")
	assert.EqualError(t, err, "console: activate failed for 1 of 3 rows")
}

func TestBulkApplyFullSuccessHasNoError(t *testing.T) {
	client := &recordingBulkClient{}
	orch := NewBulkOrchestrator(client, nil)

	report, err := orch.Apply(context.Background(), BulkDelete, []int{2, 1})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, report.Succeeded)
	assert.Empty(t, report.Failed)
	assert.ElementsMatch(t, []int{1, 2}, client.deleted)
}

func TestBulkApplyRejectsEmptySelection(t *testing.T) {
	orch := NewBulkOrchestrator(&recordingBulkClient{}, nil)
	_, err := orch.Apply(context.Background(), BulkDelete, nil)
	require.Error(t, err)
}

func TestConfirmPromptStatesActionAndCount(t *testing.T) {
	assert.Equal(t, "delete 3 rows?", ConfirmPrompt(BulkDelete, 3))
	assert.Equal(t, "deactivate 1 row?", ConfirmPrompt(BulkDeactivate, 1))
}
