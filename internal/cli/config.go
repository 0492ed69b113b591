package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dropline/pkg/config"
)

// configCommand creates the config command, which prints the effective
// settings after the config file and defaults are merged.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config

			source := cfg.Path
			if source == "" {
				source = StyleDim.Render("(defaults)")
			}
			fmt.Println(StyleTitle.Render("Configuration") + " " + StyleHighlight.Render(source))
			printNewline()

			l := cfg.Layout
			printKeyValue("person", StyleNumber.Render(fmt.Sprintf("%g", l.PersonWidth)))
			printKeyValue("generation", StyleNumber.Render(fmt.Sprintf("%g", l.GenerationHeight)))
			printKeyValue("house gap", StyleNumber.Render(fmt.Sprintf("%g", l.HouseGap)))
			printKeyValue("components", StyleNumber.Render(fmt.Sprintf("%d", l.ComponentStep)))
			printKeyValue("ceiling", StyleNumber.Render(fmt.Sprintf("%d", l.LevelCeiling)))
			printNewline()

			cacheTarget := cfg.Cache.Backend
			if cfg.Cache.Backend == config.CacheRedis {
				cacheTarget += " " + cfg.Cache.RedisAddr
			}
			printKeyValue("cache", cacheTarget)
			printKeyValue("cache ttl", cfg.Cache.TTL.String())

			storageTarget := cfg.Storage.Backend + " " + cfg.Storage.Dir
			if cfg.Storage.Backend == config.StorageMongo {
				storageTarget = cfg.Storage.Backend + " " + cfg.Storage.MongoURI + "/" + cfg.Storage.MongoDatabase
			}
			printKeyValue("storage", storageTarget)
			printKeyValue("listen", cfg.Server.Addr)
			return nil
		},
	}
}
