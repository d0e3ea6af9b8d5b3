// Package config loads vstore.json, the configuration of the vstore CLI.
//
//	{
//	  "logLevel": "info",
//	  "inspect": {
//	    "host": "localhost",
//	    "port": 7070,
//	    "metrics": true,
//	    "tick": "1s"
//	  },
//	  "demo": {
//	    "todos": ["write the store", "bind a slice"]
//	  }
//	}
//
// Missing fields take the defaults returned by New.
package config
