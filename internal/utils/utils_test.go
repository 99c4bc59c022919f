// utils_test.go
//
// A show, binge and tag tracking service with JWT auth and TMDB lookup
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of movieapp.
// movieapp is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// movieapp is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with movieapp.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package utils

import (
	"fmt"
	"net"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/movieapp/internal/types"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("xxx")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "xxx" {
		t.Error("Expected the password to be hashed")
	}
	if !CheckPassword("xxx", hash) {
		t.Error("Expected password to match")
	}
	if CheckPassword("XXX", hash) {
		t.Error("Passwords are case sensitive")
	}
}

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{types.NotFoundf("show %d", 3), fiber.StatusNotFound},
		{types.Conflictf("tag exists"), fiber.StatusConflict},
		{types.InvalidArgumentf("name is required"), fiber.StatusUnprocessableEntity},
		{types.ErrNothingSaved, fiber.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", &types.CustomError{Code: 401, Message: "no token"}), 401},
	}
	for _, tc := range cases {
		if got := StatusFromError(tc.err); got != tc.want {
			t.Errorf("StatusFromError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestPingService(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	if err := PingService("http://"+ln.Addr().String(), 0); err != nil {
		t.Errorf("Expected reachable listener, got %v", err)
	}
	if addr, err := ServiceAddress("https://api.themoviedb.org/3"); err != nil || addr != "api.themoviedb.org:443" {
		t.Errorf("Unexpected address %q (%v)", addr, err)
	}
	if err := PingService("not a url", 0); err == nil {
		t.Error("Expected error for URL without host")
	}
}
