package engine

import (
	"github.com/pkg/errors"

	"hyperprune/internal/tictactoe"
)

type Config struct {
	BoardSize     int    `json:"board_size"`
	TableCapacity int    `json:"tt_capacity"` // 0 = 不用置换表
	Seed          uint64 `json:"seed"`
}

func DefaultConfig(size int) Config {
	return Config{
		BoardSize:     size,
		TableCapacity: DefaultCapacity(size),
		Seed:          tictactoe.DefaultSeed,
	}
}

// Validate 边长越界属于配置错误，启动时就要拒绝
func (c Config) Validate() error {
	if err := tictactoe.CheckSize(c.BoardSize); err != nil {
		return errors.Wrap(err, "engine config")
	}
	if c.TableCapacity < 0 {
		return errors.Errorf("engine config: negative tt capacity %d", c.TableCapacity)
	}
	return nil
}
