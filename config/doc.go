// Package config loads chart definitions from HCL files.
//
// A file holds any number of labelled chart blocks:
//
//	radar "toughest" {
//	  data     = "${data_dir}/toughestsport.csv"
//	  name_key = "sport"
//	  limit    = 5
//	  axis "end" { label = "Endurance" }
//	}
//
//	ranking "top20" { data = "${data_dir}/toughestsport.csv" }
//	detail "sport"  { data = "${data_dir}/toughestsport.csv" }
//	scatter "nhl"   { data = "${data_dir}/clean_nhl_data.csv" }
//
// Expressions may reference the data_dir and out_dir variables. Every
// attribute except data is optional and falls back to the engine defaults.
package config
