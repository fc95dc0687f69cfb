package foodlog

// Version is the release version of the foodlog module.
const Version = "0.1.0"
