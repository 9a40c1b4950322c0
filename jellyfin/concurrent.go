package jellyfin

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Concurrency limits for the bulk helpers.
const (
	DefaultConcurrency = 10
	deleteConcurrency  = 5
)

// FetchUsers retrieves several users by id concurrently, preserving input
// order. Each fetch is still a single independent round trip; this is
// caller-side fan-out only.
func (c *Client) FetchUsers(ctx context.Context, ids []string) ([]*User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	users := make([]*User, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			user, err := c.UserByID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to fetch user %s: %w", id, err)
			}
			users[i] = user
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return users, nil
}

// BatchDeleteResult contains the results of a batch delete operation.
type BatchDeleteResult struct {
	Requested  int
	Successful []string
	Failed     []DeleteError
}

// DeleteError contains information about a failed delete operation.
type DeleteError struct {
	UserID   string
	UserName string
	Err      error
}

// Error implements the error interface.
func (e DeleteError) Error() string {
	return fmt.Sprintf("failed to delete user %s (ID: %s): %v", e.UserName, e.UserID, e.Err)
}

// BatchDeleteUsers deletes the given users with bounded concurrency,
// aggregating per-user failures instead of stopping at the first one.
func (c *Client) BatchDeleteUsers(ctx context.Context, users []User) BatchDeleteResult {
	result := BatchDeleteResult{
		Requested: len(users),
	}
	if len(users) == 0 {
		return result
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)

	successChan := make(chan string, len(users))
	errorChan := make(chan DeleteError, len(users))

	for _, user := range users {
		user := user
		g.Go(func() error {
			if err := c.DeleteUser(ctx, user.ID); err != nil {
				errorChan <- DeleteError{
					UserID:   user.ID,
					UserName: user.Name,
					Err:      err,
				}
			} else {
				successChan <- user.ID
			}
			return nil // individual failures are collected, not fatal
		})
	}

	g.Wait()
	close(successChan)
	close(errorChan)

	for id := range successChan {
		result.Successful = append(result.Successful, id)
	}
	for delErr := range errorChan {
		result.Failed = append(result.Failed, delErr)
	}

	return result
}
