// Package testutil provides test doubles and fixtures for pkgbasify.
//
// Key components:
//   - FakeRunner: scripted command.Runner that records every invocation
//   - MockConfirmer: testify mock for confirm.Confirmer
//   - afero fixtures: WriteFile, MkdirAll, ReadString and assertions over
//     an in-memory filesystem
//
// Tests never touch the host: filesystem work goes through afero.MemMapFs
// and every external program through a FakeRunner.
package testutil
