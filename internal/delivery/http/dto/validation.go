package dto

const dateLayout = "2006-01-02"
