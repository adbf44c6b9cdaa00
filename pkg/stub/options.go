/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stub

import (
	"github.com/spf13/pflag"
)

const (
	defaultUsername = "admin"
	defaultPassword = "password123"
)

// Options configure the stub service.
type Options struct {
	// Username and Password are the only credentials /auth and basic
	// authentication accept.
	Username string
	Password string
}

// NewOptions returns the options the public service is documented with.
func NewOptions() *Options {
	return &Options{
		Username: defaultUsername,
		Password: defaultPassword,
	}
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Username, "username", defaultUsername, "Username accepted when issuing tokens")
	f.StringVar(&o.Password, "password", defaultPassword, "Password accepted when issuing tokens")
}
