/*
Package todolists is a session-backed web application for managing named to-do lists.

Every visitor gets a signed session cookie. All of their lists and todos live in that
session's state, held by a pluggable store (memory, file or Redis) and optionally
encrypted at rest. Requests are serialized per session so concurrent tabs never lose
an update.

# Usage

Build an App from configuration and serve its handler:

	v := viper.New()
	cfg, err := config.Load(v, "")
	if err != nil {
		log.Fatal(err)
	}

	app, err := todolists.New(cfg, todolists.WithLogger(logging.New(slog.LevelInfo)))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	log.Fatal(http.ListenAndServe(cfg.Addr, app.Handler()))
*/
package todolists
