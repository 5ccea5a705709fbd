package sparrow

/*------------------------------------------------------------------
 *
 * Purpose:	Compile-time tunables, made load-time.
 *
 * Description:	spec.md §6 lists MAX_TASKS, MAX_SEMAPHORES, MAX_QUEUES,
 *		IDLE_STACK_SIZE and LOWEST_PRIORITY as compile-time
 *		tunables. This port keeps them as a plain struct with
 *		sane defaults, loadable from YAML the way the teacher's
 *		own daily-log settings are, so a deployment can size the
 *		kernel's static pools without a rebuild.
 *
 *---------------------------------------------------------------*/

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	MaxTasks       int `yaml:"max_tasks"`
	MaxSemaphores  int `yaml:"max_semaphores"`
	MaxQueues      int `yaml:"max_queues"`
	IdleStackSize  int `yaml:"idle_stack_size"`
	LowestPriority int `yaml:"lowest_priority"`
}

// DefaultConfig mirrors the sizes a small single-CPU embedded build
// would hardcode at compile time.
func DefaultConfig() Config {
	return Config{
		MaxTasks:       32,
		MaxSemaphores:  16,
		MaxQueues:      16,
		IdleStackSize:  256,
		LowestPriority: 63,
	}
}

func (c Config) validate() error {
	switch {
	case c.MaxTasks < 2:
		return newInvalidArgument("LoadConfig", "max_tasks must allow at least the idle task plus one real task")
	case c.MaxSemaphores < 0:
		return newInvalidArgument("LoadConfig", "max_semaphores must be non-negative")
	case c.MaxQueues < 0:
		return newInvalidArgument("LoadConfig", "max_queues must be non-negative")
	case c.LowestPriority < 1:
		return newInvalidArgument("LoadConfig", "lowest_priority must be >= 1")
	}
	return nil
}

// LoadConfig decodes a YAML document over a copy of DefaultConfig: a
// field the document omits keeps its default, and a field it sets
// (zero included) takes the document's value.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
