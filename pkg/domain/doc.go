/*
Package domain contains the core models and rules of the todo lists application.

It defines the entities kept in a session (lists and their todos), the
validation applied to user supplied names, identifier assignment and lookup.
The package is kept pure and free of I/O, persistence and HTTP concerns so the
same rules apply regardless of the adapter serving them.

# Key Entities

  - List: A named, ordered collection of todos.
  - Todo: A named, completable item belonging to exactly one list.
  - State: The per-session container holding all lists plus a single flash slot.
  - Flash: A one-time notification shown on the next rendered page.
*/
package domain
