package cli

import (
	"fmt"
	"math/rand"

	"github.com/SlpAus/reaction-records-backend/internal/game"
	"github.com/SlpAus/reaction-records-backend/internal/platform/serializer"
	"github.com/SlpAus/reaction-records-backend/internal/user"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// roundsPerGame 与浏览器客户端一局的轮数一致
const roundsPerGame = 10

func newSeedCmd() *cobra.Command {
	var users, games int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo users and games",
		RunE: func(cmd *cobra.Command, args []string) error {
			if users < 1 && games > 0 {
				return fmt.Errorf("--games requires at least one user")
			}

			ids := make([]uint, 0, users)
			for i := 0; i < users; i++ {
				suffix := uuid.NewString()[:8]
				newUser, errs, err := user.Create(cmd.Context(), serializer.Data{
					"username": "seed_" + suffix,
					"password": uuid.NewString(),
				})
				if err != nil {
					return err
				}
				if !errs.Empty() {
					_ = printJSON(cmd.ErrOrStderr(), errs)
					return errValidation
				}
				ids = append(ids, newUser.ID)
			}

			for i := 0; i < games; i++ {
				// 平均反应时间在150ms到550ms之间
				avg := 150 + rand.Intn(400)
				_, errs, err := game.Create(cmd.Context(), serializer.Data{
					"player":         fmt.Sprint(ids[rand.Intn(len(ids))]),
					"time_ms":        fmt.Sprint(avg),
					"rounds_to_play": fmt.Sprint(roundsPerGame),
					"score":          fmt.Sprint(avg),
				})
				if err != nil {
					return err
				}
				if !errs.Empty() {
					_ = printJSON(cmd.ErrOrStderr(), errs)
					return errValidation
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users and %d games\n", users, games)
			return nil
		},
	}

	cmd.Flags().IntVar(&users, "users", 5, "Number of users to create")
	cmd.Flags().IntVar(&games, "games", 20, "Number of games to create")
	return cmd
}
