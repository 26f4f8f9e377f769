// Package cli provides the interactive SafeSpace console.
//
// App drives a line-oriented REPL over a reader and a writer. Before login
// the main menu offers register, login, help and exit. After login the
// command set depends on the role of the authenticated account:
//   - regular users record moods, read their calendar, answer the wellbeing
//     and companion questionnaires and list counselor contacts
//   - staff list regular users and open their full profile
//   - administrators add, list, update and delete accounts
//
// Every outcome reported by the service layer is rendered as a message;
// handlers never terminate the loop.
package cli
