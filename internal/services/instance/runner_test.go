package instance

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/raidhall/internal/models"
)

func (s *EngineTestSuite) TestRunner_SerialisesCommands() {
	e := s.newEngine(objectiveRaid("Escort"))
	runner := NewRunner(context.Background(), e)
	defer runner.Stop()

	s.Equal("instance-id", runner.ID())
	logLen := len(e.Instance().CombatLog)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.Do(context.Background(), func(e *Engine) error {
				_, err := e.ProcessPlayerAction("tank-id", &models.PlayerAction{Type: models.ActionAbility})
				return err
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	var count int
	err := runner.Do(context.Background(), func(e *Engine) error {
		count = len(e.Instance().CombatLog)
		return nil
	})
	s.Require().NoError(err)
	s.Equal(logLen+20, count)
}

func (s *EngineTestSuite) TestRunner_ReturnsCommandError() {
	runner := NewRunner(context.Background(), s.newEngine(objectiveRaid("Escort")))
	defer runner.Stop()

	err := runner.Do(context.Background(), func(e *Engine) error {
		_, err := e.AdvanceObjective()
		if err != nil {
			return err
		}
		_, err = e.AdvanceObjective()
		return err
	})
	s.ErrorIs(err, ErrInstanceFinished)
}

func (s *EngineTestSuite) TestRunner_Stopped() {
	runner := NewRunner(context.Background(), s.newEngine(objectiveRaid("Escort")))
	runner.Stop()

	err := runner.Do(context.Background(), func(e *Engine) error {
		s.Fail("command ran after stop")
		return nil
	})
	s.ErrorIs(err, ErrInstanceFinished)
}

func (s *EngineTestSuite) TestRunner_CancelledBeforeQueued() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(context.Background(), s.newEngine(objectiveRaid("Escort")))
	defer runner.Stop()

	err := runner.Do(ctx, func(e *Engine) error {
		s.Fail("command ran with a cancelled context")
		return nil
	})
	s.ErrorIs(err, context.Canceled)
}

func (s *EngineTestSuite) TestRunner_QueuedCommandOutlivesContext() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := NewRunner(context.Background(), s.newEngine(objectiveRaid("Escort", "Return")))
	defer runner.Stop()

	block := make(chan struct{})
	go func() {
		_ = runner.Do(context.Background(), func(e *Engine) error {
			<-block
			return nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	result := make(chan error, 1)
	go func() {
		result <- runner.Do(ctx, func(e *Engine) error {
			_, err := e.AdvanceObjective()
			return err
		})
	}()
	time.Sleep(10 * time.Millisecond)

	cancel()
	time.Sleep(10 * time.Millisecond)
	close(block)

	s.NoError(<-result)

	var progress int
	s.Require().NoError(runner.Do(context.Background(), func(e *Engine) error {
		progress = e.Instance().Progress
		return nil
	}))
	s.Equal(1, progress)
}

func (s *EngineTestSuite) TestRunner_ContextCancelledDuringCommand() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := NewRunner(context.Background(), s.newEngine(objectiveRaid("Escort", "Return")))
	defer runner.Stop()

	err := runner.Do(ctx, func(e *Engine) error {
		cancel()
		time.Sleep(10 * time.Millisecond)
		_, err := e.AdvanceObjective()
		return err
	})
	s.NoError(err)
}
