// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It reads topic documents written as `topic` and `relation`
// blocks and translates them into the format-agnostic config.Model.
//
//	topic "18.3" {
//	  title            = "Retention"
//	  content          = "..."
//	  parent           = "18"
//	  cross_references = ["12.1"]
//	  position         = { start = 120, end = 480 }
//	}
//
//	relation {
//	  source  = "18.3"
//	  target  = "4"
//	  context = "mentions the retention schedule"
//	}
package hcl
